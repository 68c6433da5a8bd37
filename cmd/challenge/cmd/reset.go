package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the challenge account for a fresh attempt",
	Long: `Clear the trade history and restore the default account to an active
phase-1 challenge at its starting balance. Failure records are kept as an
audit trail.

Example:
  challenge reset --config challenge.yaml`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, j, err := openService(cfg, newLogger())
	if err != nil {
		return err
	}
	defer j.Close()

	if err := svc.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	fmt.Printf("✓ Account reset to $%.2f, phase 1, active\n", cfg.Account.StartBalance)
	return nil
}
