package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/challenge"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/journal"
)

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "Query evaluated trades from the journal",
	Long: `Query and display evaluated trades from the SQLite journal.

Subcommands:
  list   - List every trade in submission order
  today  - List trades entered today (UTC)
  day    - List trades entered on a specific day (UTC)

Examples:
  challenge trades list
  challenge trades today
  challenge trades day 2024-03-04`,
}

var tradesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every trade in submission order",
	Args:  cobra.NoArgs,
	RunE:  runTradesList,
}

var tradesTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades entered today (UTC)",
	Args:  cobra.NoArgs,
	RunE:  runTradesToday,
}

var tradesDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades entered on a specific day (UTC)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradesDay,
}

func init() {
	rootCmd.AddCommand(tradesCmd)
	tradesCmd.AddCommand(tradesListCmd)
	tradesCmd.AddCommand(tradesTodayCmd)
	tradesCmd.AddCommand(tradesDayCmd)
}

func runTradesList(cmd *cobra.Command, args []string) error {
	return withJournal(func(j *journal.SQLite, accountID string) error {
		trades, err := j.ListTrades(accountID)
		if err != nil {
			return fmt.Errorf("query trades: %w", err)
		}
		printTrades(trades)
		return nil
	})
}

func runTradesToday(cmd *cobra.Command, args []string) error {
	return runTradesForDay(time.Now().UTC().Format("2006-01-02"))
}

func runTradesDay(cmd *cobra.Command, args []string) error {
	return runTradesForDay(args[0])
}

func runTradesForDay(day string) error {
	start, end, err := dayBounds(day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	return withJournal(func(j *journal.SQLite, accountID string) error {
		trades, err := j.ListTradesEnteredBetween(accountID, start, end)
		if err != nil {
			return fmt.Errorf("query trades: %w", err)
		}
		printTrades(trades)
		return nil
	})
}

// withJournal opens the configured journal, resolves the default account
// and hands both to fn.
func withJournal(fn func(j *journal.SQLite, accountID string) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	j, err := journal.NewSQLite(cfg.Journal.DBPath, newLogger())
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	accountID, err := j.DefaultAccountID()
	if err != nil {
		return err
	}
	return fn(j, accountID)
}

func dayBounds(day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return t, t.Add(24 * time.Hour), nil
}

func printTrades(trades []challenge.Trade) {
	if len(trades) == 0 {
		fmt.Println("No trades.")
		return
	}

	for _, t := range trades {
		exit := "-"
		if !t.ExitTime.IsZero() {
			exit = t.ExitTime.UTC().Format("15:04:05")
		}
		fmt.Printf("%s  %-8s %s → %s  $%+.2f", t.ID, t.Symbol,
			t.EntryTime.UTC().Format("2006-01-02 15:04:05"), exit, t.PnL)
		if len(t.Violations) > 0 {
			fmt.Printf("  [%s]", strings.Join(t.Violations, " | "))
		}
		fmt.Println()
	}
	fmt.Printf("%d trade(s)\n", len(trades))
}
