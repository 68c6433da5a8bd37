package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/challenge"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/journal"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (r *recordingNotifier) SendText(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, text)
	return nil
}

func (r *recordingNotifier) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.sent...)
}

func newTestService(t *testing.T, startBalance float64) (*Service, *recordingNotifier) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	j, err := journal.NewSQLite(filepath.Join(t.TempDir(), "test.db"), log)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	_, err = j.Seed(startBalance)
	assert.NoError(t, err)

	n := &recordingNotifier{}
	return New(j, n, log, startBalance), n
}

func closedTrade(pnl float64, entry time.Time) challenge.Trade {
	return challenge.Trade{
		Symbol:     "EUR_USD",
		EntryPrice: 100,
		ExitPrice:  100 + pnl/challenge.ContractMultiplier,
		Size:       1,
		Strategy:   "breakout",
		Reason:     "test",
		EntryTime:  entry,
		ExitTime:   entry.Add(10 * time.Minute),
	}
}

var monday = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

func TestSubmitTradePersists(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t, 2500)

	trade, account, err := s.SubmitTrade(closedTrade(75, monday))
	assert.NoError(t, err)
	assert.NotEmpty(t, trade.ID)
	assert.InDelta(t, 75.0, trade.PnL, 1e-9)
	assert.Equal(t, challenge.StatusActive, account.Status)

	dash, err := s.Dashboard(monday)
	assert.NoError(t, err)
	assert.Len(t, dash.Account.Trades, 1)
	assert.InDelta(t, 2575.0, dash.Summary.Balance, 1e-9)
	assert.Len(t, dash.Curve, 1)
	assert.Empty(t, dash.Failures)
}

func TestSubmitTradeInvalidInputRejected(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t, 2500)

	bad := closedTrade(10, monday)
	bad.Size = 0

	_, _, err := s.SubmitTrade(bad)
	assert.ErrorIs(t, err, challenge.ErrInvalidTrade)

	dash, err := s.Dashboard(monday)
	assert.NoError(t, err)
	assert.Empty(t, dash.Account.Trades)
}

func TestSubmitTradeFailureRecordedAndNotified(t *testing.T) {
	t.Parallel()

	s, n := newTestService(t, 2500)

	// -130 on one day breaches the 5% (125) daily limit.
	_, account, err := s.SubmitTrade(closedTrade(-130, monday))
	assert.NoError(t, err)
	assert.Equal(t, challenge.StatusFailed, account.Status)
	assert.False(t, account.FailedAt.IsZero())

	dash, err := s.Dashboard(monday)
	assert.NoError(t, err)
	assert.NotEmpty(t, dash.Failures)
	assert.Len(t, dash.Account.Trades, 1)
	assert.NotEmpty(t, dash.Account.Trades[0].Violations)

	msgs := n.messages()
	assert.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "failed")
}

func TestSubmitTradeTerminalAccountRejected(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t, 2500)

	_, _, err := s.SubmitTrade(closedTrade(-130, monday))
	assert.NoError(t, err)

	_, _, err = s.SubmitTrade(closedTrade(10, monday.AddDate(0, 0, 1)))
	assert.ErrorIs(t, err, challenge.ErrTerminalAccount)

	dash, err := s.Dashboard(monday)
	assert.NoError(t, err)
	assert.Len(t, dash.Account.Trades, 1)
}

func TestPhaseAdvanceNotified(t *testing.T) {
	t.Parallel()

	s, n := newTestService(t, 2500)

	_, account, err := s.SubmitTrade(closedTrade(260, monday))
	assert.NoError(t, err)
	assert.Equal(t, 2, account.Phase)
	assert.Equal(t, challenge.StatusStep1Passed, account.Status)

	msgs := n.messages()
	assert.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Phase 1 passed")

	// 5% of 2500 in phase 2; total profit 260+130 clears it.
	_, account, err = s.SubmitTrade(closedTrade(130, monday.AddDate(0, 0, 1)))
	assert.NoError(t, err)
	assert.Equal(t, challenge.StatusPassed, account.Status)

	msgs = n.messages()
	assert.Len(t, msgs, 2)
	assert.Contains(t, msgs[1], "passed")
}

func TestResetRestoresAccount(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t, 2500)

	_, _, err := s.SubmitTrade(closedTrade(-130, monday))
	assert.NoError(t, err)

	assert.NoError(t, s.Reset())

	dash, err := s.Dashboard(monday)
	assert.NoError(t, err)
	assert.Empty(t, dash.Account.Trades)
	assert.Equal(t, challenge.StatusActive, dash.Account.Status)
	assert.Equal(t, 1, dash.Account.Phase)
	// Audit trail survives the reset.
	assert.NotEmpty(t, dash.Failures)

	// Trading resumes after the reset.
	_, account, err := s.SubmitTrade(closedTrade(20, monday.AddDate(0, 0, 2)))
	assert.NoError(t, err)
	assert.Equal(t, challenge.StatusActive, account.Status)
}
