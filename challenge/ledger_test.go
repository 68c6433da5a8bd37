package challenge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tradeAt(pnl float64, entry, exit time.Time) Trade {
	return Trade{
		Symbol:    "EUR_USD",
		EntryTime: entry,
		ExitTime:  exit,
		PnL:       pnl,
	}
}

func TestLedgerZeroTrades(t *testing.T) {
	t.Parallel()

	a := Account{StartBalance: 2500, Phase: 1, Status: StatusActive}

	assert.InDelta(t, 2500.0, CurrentBalance(a), 1e-9)
	assert.Empty(t, EquityCurve(a))
	assert.InDelta(t, 2500.0, PeakBalance(a), 1e-9)
	assert.InDelta(t, 0.0, DailyPnL(a, time.Now()), 1e-9)
}

func TestCurrentBalanceAdditivity(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	pnls := []float64{120, -40, 75.5, -10.25, 0}

	a := Account{StartBalance: 2500}
	var sum float64
	for i, p := range pnls {
		a.Trades = append(a.Trades, tradeAt(p, base.Add(time.Duration(i)*time.Hour), base.Add(time.Duration(i)*time.Hour+time.Minute)))
		sum += p
	}

	assert.InDelta(t, 2500+sum, CurrentBalance(a), 1e-9)

	// Order independence: reverse the history, same balance.
	rev := Account{StartBalance: 2500}
	for i := len(a.Trades) - 1; i >= 0; i-- {
		rev.Trades = append(rev.Trades, a.Trades[i])
	}
	assert.InDelta(t, CurrentBalance(a), CurrentBalance(rev), 1e-9)
}

func TestEquityCurveSortedByEffectiveTime(t *testing.T) {
	t.Parallel()

	d := func(h int) time.Time { return time.Date(2024, 3, 1, h, 0, 0, 0, time.UTC) }

	// Submitted out of chronological order; the second trade has no exit
	// time so its entry time orders it.
	a := Account{StartBalance: 1000}
	a.Trades = append(a.Trades, tradeAt(100, d(9), d(15)))
	a.Trades = append(a.Trades, tradeAt(-50, d(11), time.Time{}))
	a.Trades = append(a.Trades, tradeAt(25, d(10), d(12)))

	curve := EquityCurve(a)
	assert.Len(t, curve, len(a.Trades))

	assert.True(t, curve[0].Time.Equal(d(11)))
	assert.True(t, curve[1].Time.Equal(d(12)))
	assert.True(t, curve[2].Time.Equal(d(15)))

	assert.InDelta(t, 950.0, curve[0].Balance, 1e-9)
	assert.InDelta(t, 975.0, curve[1].Balance, 1e-9)
	assert.InDelta(t, 1075.0, curve[2].Balance, 1e-9)
}

func TestEquityCurveStableOnTies(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	a := Account{StartBalance: 1000}
	a.Trades = append(a.Trades, tradeAt(10, ts.Add(-time.Hour), ts))
	a.Trades = append(a.Trades, tradeAt(-30, ts.Add(-time.Hour), ts))
	a.Trades = append(a.Trades, tradeAt(5, ts.Add(-time.Hour), ts))

	curve := EquityCurve(a)
	assert.Len(t, curve, 3)

	// Ties keep submission order: +10, -30, +5.
	assert.InDelta(t, 1010.0, curve[0].Balance, 1e-9)
	assert.InDelta(t, 980.0, curve[1].Balance, 1e-9)
	assert.InDelta(t, 985.0, curve[2].Balance, 1e-9)
}

func TestPeakBalanceBounds(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		pnls []float64
		want float64
	}{
		{"all_losses", []float64{-50, -25}, 2500},
		{"rise_then_fall", []float64{200, 100, -400}, 2800},
		{"late_peak", []float64{-100, 500}, 2900},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := Account{StartBalance: 2500}
			for i, p := range tt.pnls {
				a.Trades = append(a.Trades, tradeAt(p, base.Add(time.Duration(i)*time.Hour), base.Add(time.Duration(i)*time.Hour+time.Minute)))
			}

			peak := PeakBalance(a)
			assert.InDelta(t, tt.want, peak, 1e-9)
			assert.GreaterOrEqual(t, peak, a.StartBalance)
			assert.GreaterOrEqual(t, peak, CurrentBalance(a))
		})
	}
}

func TestPeakBalanceUsesSubmissionOrder(t *testing.T) {
	t.Parallel()

	d := func(h int) time.Time { return time.Date(2024, 3, 1, h, 0, 0, 0, time.UTC) }

	// Chronologically the loss happened first, but it was submitted
	// second; the submission-order prefix peak sees 2700 first.
	a := Account{StartBalance: 2500}
	a.Trades = append(a.Trades, tradeAt(200, d(14), d(15)))
	a.Trades = append(a.Trades, tradeAt(-300, d(9), d(10)))

	assert.InDelta(t, 2700.0, PeakBalance(a), 1e-9)
}

func TestDailyPnLMatchesEntryDay(t *testing.T) {
	t.Parallel()

	day1 := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)

	a := Account{StartBalance: 2500}
	a.Trades = append(a.Trades, tradeAt(-60, day1, day1.Add(time.Hour)))
	a.Trades = append(a.Trades, tradeAt(-70, day1.Add(2*time.Hour), day2)) // exits next day, still counts on day1
	a.Trades = append(a.Trades, tradeAt(40, day2, day2.Add(time.Hour)))

	assert.InDelta(t, -130.0, DailyPnL(a, day1), 1e-9)
	assert.InDelta(t, 40.0, DailyPnL(a, day2), 1e-9)
	assert.InDelta(t, 0.0, DailyPnL(a, day2.AddDate(0, 0, 1)), 1e-9)
}

func TestComputePnLAndDuration(t *testing.T) {
	t.Parallel()

	entry := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tr := Trade{
		EntryPrice: 1.1000,
		ExitPrice:  1.1050,
		Size:       2,
		EntryTime:  entry,
		ExitTime:   entry.Add(3 * time.Minute),
	}

	assert.InDelta(t, 1.0, ComputePnL(tr), 1e-9) // 0.005 * 2 * 100
	assert.InDelta(t, 180.0, Duration(tr), 1e-9)

	tr.ExitTime = time.Time{}
	assert.InDelta(t, 0.0, Duration(tr), 1e-9)

	tr.ExitTime = entry.Add(-time.Minute)
	assert.InDelta(t, 0.0, Duration(tr), 1e-9)
}
