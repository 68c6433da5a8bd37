package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/journal"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the journal schema and seed the challenge account",
	Long: `Initialize the SQLite journal and seed the default challenge account.

Running it against an existing database is safe: the schema is created
with IF NOT EXISTS and seeding is skipped when an account already exists.

Example:
  challenge init-db --config challenge.yaml`,
	Args: cobra.NoArgs,
	RunE: runInitDB,
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}

func runInitDB(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	j, err := journal.NewSQLite(cfg.Journal.DBPath, newLogger())
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	accountID, err := j.Seed(cfg.Account.StartBalance)
	if err != nil {
		return fmt.Errorf("seed account: %w", err)
	}

	fmt.Printf("✓ Journal ready: %s\n", cfg.Journal.DBPath)
	fmt.Printf("  Account %s seeded with $%.2f\n", accountID, cfg.Account.StartBalance)
	return nil
}
