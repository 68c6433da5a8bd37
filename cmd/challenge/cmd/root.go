package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/config"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/journal"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/notify"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/service"
)

var rootCmd = &cobra.Command{
	Use:   "challenge",
	Short: "A funded-trading challenge simulator with prop-firm style rules",
	Long: `Challenge simulates a funded-trading evaluation account.

Every submitted trade is checked against the rulebook:
  - 2% max loss per trade
  - 5% max daily drawdown
  - 8% max overall drawdown from the peak balance
  - 10% profit target in phase 1, 5% in phase 2

It provides tools for:
  - Serving the web API and equity dashboard
  - Seeding and querying the trade journal
  - Inspecting account status and rule headroom
  - Resetting a blown account for another attempt`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (defaults are used when omitted)")
}

// loadConfig returns the configuration from --config, or the defaults when
// no file was given.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgFile)
}

// newLogger builds the colored console logger every command shares.
func newLogger() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
}

// openService opens the journal and wires the challenge service on top of
// it. The caller owns closing the returned journal.
func openService(cfg *config.Config, log *slog.Logger) (*service.Service, *journal.SQLite, error) {
	j, err := journal.NewSQLite(cfg.Journal.DBPath, log)
	if err != nil {
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}

	var notifier notify.TextNotifier
	if cfg.Telegram.Token != "" {
		notifier, err = notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, log)
		if err != nil {
			j.Close()
			return nil, nil, fmt.Errorf("telegram: %w", err)
		}
	}

	return service.New(j, notifier, log, cfg.Account.StartBalance), j, nil
}
