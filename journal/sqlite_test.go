package journal

import (
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/challenge"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/pkg/id"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	j, err := NewSQLite(path, log)
	assert.NoError(t, err)

	return j, path
}

func seedTestAccount(t *testing.T, j *SQLite, balance float64) string {
	t.Helper()

	accountID, err := j.Seed(balance)
	assert.NoError(t, err)
	return accountID
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('users','accounts','trades','failures')`)
	assert.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["users"])
	assert.True(t, found["accounts"])
	assert.True(t, found["trades"])
	assert.True(t, found["failures"])
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	first := seedTestAccount(t, j, 2500)
	second := seedTestAccount(t, j, 9999)
	assert.Equal(t, first, second)

	a, err := j.GetAccount(first)
	assert.NoError(t, err)
	assert.InDelta(t, 2500.0, a.StartBalance, 1e-9)
	assert.Equal(t, 1, a.Phase)
	assert.Equal(t, challenge.StatusActive, a.Status)
	assert.True(t, a.FailedAt.IsZero())
	assert.Empty(t, a.Trades)
}

func TestSaveEvaluationRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	accountID := seedTestAccount(t, j, 2500)
	a, err := j.GetAccount(accountID)
	assert.NoError(t, err)

	entry := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	trade := challenge.Trade{
		ID:           id.New(),
		Symbol:       "EUR_USD",
		EntryPrice:   1.1,
		ExitPrice:    1.05,
		Size:         30,
		Strategy:     "breakout",
		Reason:       "news spike",
		EntryTime:    entry,
		ExitTime:     entry.Add(5 * time.Minute),
		PnL:          -150,
		DurationSecs: 300,
		Violations:   []string{"exceeded 2% max loss per trade ($150.00 > $50.00)", "max daily drawdown 5% breached ($-150.00)"},
	}

	failedAt := entry.Add(6 * time.Minute)
	a.Status = challenge.StatusFailed
	a.FailedAt = failedAt
	failure := challenge.Failure{
		AccountID:        accountID,
		Rule:             challenge.RuleDailyDrawdown,
		PnLAtFailure:     -150,
		BalanceAtFailure: 2350,
		Timestamp:        failedAt,
	}

	assert.NoError(t, j.SaveEvaluation(trade, a, []challenge.Failure{failure}))

	got, err := j.GetAccount(accountID)
	assert.NoError(t, err)
	assert.Equal(t, challenge.StatusFailed, got.Status)
	assert.True(t, got.FailedAt.Equal(failedAt))
	assert.Len(t, got.Trades, 1)

	gt := got.Trades[0]
	assert.Equal(t, trade.ID, gt.ID)
	assert.Equal(t, trade.Symbol, gt.Symbol)
	assert.InDelta(t, trade.PnL, gt.PnL, 1e-9)
	assert.InDelta(t, trade.DurationSecs, gt.DurationSecs, 1e-9)
	assert.True(t, gt.EntryTime.Equal(trade.EntryTime))
	assert.True(t, gt.ExitTime.Equal(trade.ExitTime))
	assert.Equal(t, trade.Violations, gt.Violations)

	failures, err := j.ListFailures(accountID)
	assert.NoError(t, err)
	assert.Len(t, failures, 1)
	assert.Equal(t, challenge.RuleDailyDrawdown, failures[0].Rule)
	assert.InDelta(t, 2350.0, failures[0].BalanceAtFailure, 1e-9)
}

func TestSaveEvaluationNoViolations(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	accountID := seedTestAccount(t, j, 2500)
	a, err := j.GetAccount(accountID)
	assert.NoError(t, err)

	entry := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	trade := challenge.Trade{
		ID:         id.New(),
		Symbol:     "EUR_USD",
		EntryPrice: 1.1,
		ExitPrice:  1.11,
		Size:       1,
		EntryTime:  entry,
		ExitTime:   entry.Add(time.Minute),
		PnL:        1,
	}

	assert.NoError(t, j.SaveEvaluation(trade, a, nil))

	got, err := j.GetAccount(accountID)
	assert.NoError(t, err)
	assert.Len(t, got.Trades, 1)
	assert.Empty(t, got.Trades[0].Violations)
}

func TestResetAccountClearsTradesKeepsFailures(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	accountID := seedTestAccount(t, j, 2500)
	a, err := j.GetAccount(accountID)
	assert.NoError(t, err)

	entry := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	a.Status = challenge.StatusFailed
	a.FailedAt = entry
	trade := challenge.Trade{ID: id.New(), Symbol: "EUR_USD", EntryPrice: 1, ExitPrice: 0.9, Size: 20, EntryTime: entry, PnL: -200}
	failure := challenge.Failure{AccountID: accountID, Rule: challenge.RuleOverallDrawdown, PnLAtFailure: -200, BalanceAtFailure: 2300, Timestamp: entry}
	assert.NoError(t, j.SaveEvaluation(trade, a, []challenge.Failure{failure}))

	assert.NoError(t, j.ResetAccount(accountID, 2500))

	got, err := j.GetAccount(accountID)
	assert.NoError(t, err)
	assert.Empty(t, got.Trades)
	assert.Equal(t, challenge.StatusActive, got.Status)
	assert.Equal(t, 1, got.Phase)
	assert.True(t, got.FailedAt.IsZero())

	// The audit trail of the failed attempt survives the reset.
	failures, err := j.ListFailures(accountID)
	assert.NoError(t, err)
	assert.Len(t, failures, 1)
}

func TestCreateAndGetUser(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	u, err := j.CreateUser("trader1", "trader1@example.com", "$2a$10$hash")
	assert.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	got, err := j.GetUser("trader1")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "trader1@example.com", got.Email)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)

	_, err = j.CreateUser("trader1", "other@example.com", "h")
	assert.Error(t, err)

	_, err = j.GetUser("nobody")
	assert.Error(t, err)
}
