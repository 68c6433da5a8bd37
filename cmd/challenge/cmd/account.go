package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/challenge"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show the challenge account and its rule headroom",
	Long: `Display the default challenge account: balance, phase, status and how
much room is left under each rule.

Example:
  challenge account --config challenge.yaml`,
	Args: cobra.NoArgs,
	RunE: runAccount,
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

func runAccount(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, j, err := openService(cfg, newLogger())
	if err != nil {
		return err
	}
	defer j.Close()

	dash, err := svc.Dashboard(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	a := dash.Account
	s := dash.Summary

	fmt.Printf("Account %s (phase %d, %s)\n", a.ID, a.Phase, a.Status)
	if !a.FailedAt.IsZero() {
		fmt.Printf("  Failed at:      %s\n", a.FailedAt.UTC().Format(time.RFC3339))
	}
	fmt.Printf("  Start balance:  $%.2f\n", a.StartBalance)
	fmt.Printf("  Balance:        $%.2f (profit $%.2f)\n", s.Balance, s.Profit)
	fmt.Printf("  Peak balance:   $%.2f\n", s.PeakBalance)
	fmt.Printf("  Trades:         %d\n", len(a.Trades))
	fmt.Println()
	fmt.Printf("  Profit target:    %s $%.2f of $%.2f\n", ruleMark(s.ProfitTarget), s.ProfitTarget.Current, s.ProfitTarget.Limit)
	fmt.Printf("  Daily loss:       %s $%.2f against limit $%.2f\n", ruleMark(s.DailyLoss), s.DailyLoss.Current, s.DailyLoss.Limit)
	fmt.Printf("  Overall drawdown: %s $%.2f of $%.2f\n", ruleMark(s.OverallDraw), s.OverallDraw.Current, s.OverallDraw.Limit)

	if len(dash.Failures) > 0 {
		fmt.Println()
		fmt.Printf("  Failures on record: %d (latest: %s)\n",
			len(dash.Failures), dash.Failures[0].Rule)
	}
	return nil
}

func ruleMark(r challenge.RuleState) string {
	if r.OK {
		return "✓"
	}
	return "✗"
}
