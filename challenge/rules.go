package challenge

import (
	"errors"
	"fmt"
	"time"
)

// ErrTerminalAccount is returned when evaluation is requested against an
// account that already passed or failed. The caller surfaces this as a
// user-visible rejection; the engine never mutates a concluded challenge.
var ErrTerminalAccount = errors.New("challenge already concluded")

// ErrInvalidTrade wraps the precondition failures listed in ValidateCandidate.
var ErrInvalidTrade = errors.New("invalid trade")

// Rule codes. Daily and overall drawdown are the breach class: either one
// fails the account. A per-trade loss is only reported on the trade.
const (
	RuleMaxLossPerTrade = "MAX_LOSS_PER_TRADE"
	RuleDailyDrawdown   = "DAILY_DRAWDOWN"
	RuleOverallDrawdown = "OVERALL_DRAWDOWN"
)

// Legacy 2-step rulebook percentages, all relative to the start balance.
// These are product constants, not configuration.
const (
	MaxDailyDrawdownPct   = 0.05
	MaxOverallDrawdownPct = 0.08
	MaxLossPerTradePct    = 0.02
	ProfitTargetPhase1Pct = 0.10
	ProfitTargetPhase2Pct = 0.05
)

// Violation is one rule breach detected while evaluating a trade.
type Violation struct {
	Code string
	Msg  string
}

// Verdict is everything a single evaluation pass produced. The caller is
// responsible for persisting Trade, Account and Failures atomically; the
// evaluator itself has no side effects.
type Verdict struct {
	Trade      Trade
	Account    Account
	Violations []Violation
	Failures   []Failure
}

// Thresholds are the absolute rule limits for one account phase.
type Thresholds struct {
	ProfitTarget       float64
	MaxDailyDrawdown   float64
	MaxOverallDrawdown float64
	MaxLossPerTrade    float64
}

// ThresholdsFor derives the absolute limits from the start balance and phase.
func ThresholdsFor(startBalance float64, phase int) Thresholds {
	targetPct := ProfitTargetPhase1Pct
	if phase != 1 {
		targetPct = ProfitTargetPhase2Pct
	}
	return Thresholds{
		ProfitTarget:       startBalance * targetPct,
		MaxDailyDrawdown:   startBalance * MaxDailyDrawdownPct,
		MaxOverallDrawdown: startBalance * MaxOverallDrawdownPct,
		MaxLossPerTrade:    startBalance * MaxLossPerTradePct,
	}
}

// ValidateCandidate rejects trades the engine must never see: non-positive
// prices or size, or a missing entry time. Timestamp parsing errors belong
// to the interface layer and are not checked here.
func ValidateCandidate(t Trade) error {
	if t.EntryPrice <= 0 {
		return fmt.Errorf("%w: entry price must be positive", ErrInvalidTrade)
	}
	if t.ExitPrice <= 0 {
		return fmt.Errorf("%w: exit price must be positive", ErrInvalidTrade)
	}
	if t.Size <= 0 {
		return fmt.Errorf("%w: size must be positive", ErrInvalidTrade)
	}
	if t.EntryTime.IsZero() {
		return fmt.Errorf("%w: entry time is required", ErrInvalidTrade)
	}
	return nil
}

// Evaluate computes the candidate's derived fields, applies the rulebook in
// fixed order and returns the annotated trade plus the account's updated
// phase/status. The candidate is treated as appended last to the account's
// trade history for every aggregate. Deterministic: now only feeds FailedAt.
func Evaluate(a Account, candidate Trade, now time.Time) (Verdict, error) {
	if a.Status.Terminal() {
		return Verdict{}, ErrTerminalAccount
	}

	candidate.PnL = ComputePnL(candidate)
	candidate.DurationSecs = Duration(candidate)

	th := ThresholdsFor(a.StartBalance, a.Phase)

	// Hypothetical history with the candidate appended last.
	with := a
	with.Trades = append(append([]Trade{}, a.Trades...), candidate)
	balance := CurrentBalance(with)

	var violations []Violation

	if candidate.PnL < -th.MaxLossPerTrade {
		violations = append(violations, Violation{
			Code: RuleMaxLossPerTrade,
			Msg: fmt.Sprintf("exceeded 2%% max loss per trade ($%.2f > $%.2f)",
				-candidate.PnL, th.MaxLossPerTrade),
		})
	}

	dailyPnL := DailyPnL(with, candidate.EntryTime)
	if dailyPnL < -th.MaxDailyDrawdown {
		violations = append(violations, Violation{
			Code: RuleDailyDrawdown,
			Msg:  fmt.Sprintf("max daily drawdown 5%% breached ($%.2f)", dailyPnL),
		})
	}

	peak := PeakBalance(with)
	if peak-balance > th.MaxOverallDrawdown {
		violations = append(violations, Violation{
			Code: RuleOverallDrawdown,
			Msg:  fmt.Sprintf("max overall drawdown 8%% breached ($%.2f)", peak-balance),
		})
	}

	// Profit target runs even when drawdown violations were found in the
	// same pass; advancement and failure are resolved independently.
	totalProfit := balance - a.StartBalance
	if totalProfit >= th.ProfitTarget {
		if a.Phase == 1 {
			a.Phase = 2
			a.Status = StatusStep1Passed
		} else {
			a.Status = StatusPassed
		}
	}

	var failures []Failure
	for _, v := range violations {
		if v.Code != RuleDailyDrawdown && v.Code != RuleOverallDrawdown {
			continue
		}
		a.Status = StatusFailed
		if a.FailedAt.IsZero() {
			a.FailedAt = now.UTC()
		}
		failures = append(failures, Failure{
			AccountID:        a.ID,
			Rule:             v.Code,
			PnLAtFailure:     totalProfit,
			BalanceAtFailure: balance,
			Timestamp:        now.UTC(),
		})
	}

	candidate.Violations = nil
	for _, v := range violations {
		candidate.Violations = append(candidate.Violations, v.Msg)
	}

	// The returned account carries the candidate in its history so callers
	// can derive post-trade aggregates without a reload.
	with.Trades[len(with.Trades)-1] = candidate
	a.Trades = with.Trades

	return Verdict{
		Trade:      candidate,
		Account:    a,
		Violations: violations,
		Failures:   failures,
	}, nil
}
