package challenge

import (
	"sort"
	"time"
)

// Ledger operations derive balances and aggregates from an account's trade
// history. All of them are pure functions of the trade slice and are safe
// to call on an account with no trades.

// EquityPoint is one step of the equity curve.
type EquityPoint struct {
	Time    time.Time
	Balance float64
}

// CurrentBalance is the start balance plus the sum of all realized P&L.
func CurrentBalance(a Account) float64 {
	balance := a.StartBalance
	for _, t := range a.Trades {
		balance += t.PnL
	}
	return balance
}

// effectiveTime orders a trade on the equity curve: exit time when the
// position was closed with one, entry time otherwise.
func effectiveTime(t Trade) time.Time {
	if !t.ExitTime.IsZero() {
		return t.ExitTime
	}
	return t.EntryTime
}

// EquityCurve returns one point per trade, sorted ascending by effective
// time. The sort is stable so trades sharing a timestamp keep their
// submission order and the curve stays deterministic.
func EquityCurve(a Account) []EquityPoint {
	if len(a.Trades) == 0 {
		return nil
	}

	sorted := make([]Trade, len(a.Trades))
	copy(sorted, a.Trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return effectiveTime(sorted[i]).Before(effectiveTime(sorted[j]))
	})

	curve := make([]EquityPoint, 0, len(sorted))
	running := a.StartBalance
	for _, t := range sorted {
		running += t.PnL
		curve = append(curve, EquityPoint{Time: effectiveTime(t), Balance: running})
	}
	return curve
}

// PeakBalance is the highest running balance over the trade history in
// submission order. Note this deliberately walks insertion order, not the
// chronological equity curve, matching the product's drawdown accounting.
func PeakBalance(a Account) float64 {
	peak := a.StartBalance
	running := a.StartBalance
	for _, t := range a.Trades {
		running += t.PnL
		if running > peak {
			peak = running
		}
	}
	return peak
}

// DailyPnL sums realized P&L over trades entered on the given UTC
// calendar day.
func DailyPnL(a Account, day time.Time) float64 {
	y, m, d := day.UTC().Date()
	var sum float64
	for _, t := range a.Trades {
		ty, tm, td := t.EntryTime.UTC().Date()
		if ty == y && tm == m && td == d {
			sum += t.PnL
		}
	}
	return sum
}
