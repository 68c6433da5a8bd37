package challenge

import "time"

// RuleState is the dashboard view of one rule: its absolute limit and the
// value currently counted against it.
type RuleState struct {
	Limit   float64 `json:"limit"`
	Current float64 `json:"current"`
	OK      bool    `json:"ok"`
}

// Summary is a point-in-time readout of the account against the rulebook.
// It re-derives everything from the ledger, so it never disagrees with
// what Evaluate would decide for the same history.
type Summary struct {
	Balance      float64   `json:"balance"`
	Profit       float64   `json:"profit"`
	PeakBalance  float64   `json:"peak_balance"`
	ProfitTarget RuleState `json:"profit_target"`
	DailyLoss    RuleState `json:"daily_loss"`
	OverallDraw  RuleState `json:"overall_drawdown"`
}

// Summarize builds the rule summary for the account as of the given day
// (the day bounds the daily-loss figure).
func Summarize(a Account, day time.Time) Summary {
	th := ThresholdsFor(a.StartBalance, a.Phase)
	balance := CurrentBalance(a)
	profit := balance - a.StartBalance
	peak := PeakBalance(a)
	daily := DailyPnL(a, day)

	return Summary{
		Balance:     balance,
		Profit:      profit,
		PeakBalance: peak,
		ProfitTarget: RuleState{
			Limit:   th.ProfitTarget,
			Current: profit,
			OK:      profit >= th.ProfitTarget,
		},
		DailyLoss: RuleState{
			Limit:   th.MaxDailyDrawdown,
			Current: daily,
			OK:      daily >= -th.MaxDailyDrawdown,
		},
		OverallDraw: RuleState{
			Limit:   th.MaxOverallDrawdown,
			Current: peak - balance,
			OK:      peak-balance <= th.MaxOverallDrawdown,
		},
	}
}
