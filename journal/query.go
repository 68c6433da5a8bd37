package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/challenge"
)

const tradeColumns = `trade_id, symbol, entry_price, exit_price, size, strategy, reason,
	entry_time, exit_time, pnl, duration_secs, violations`

// DefaultAccountID returns the oldest account's id. The product runs one
// challenge account per database.
func (j *SQLite) DefaultAccountID() (string, error) {
	var accountID string
	err := j.db.QueryRow(`SELECT account_id FROM accounts ORDER BY account_id LIMIT 1`).Scan(&accountID)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("no account found; run init-db first")
	}
	if err != nil {
		return "", err
	}
	return accountID, nil
}

// DefaultAccount loads the oldest account together with its full trade
// history.
func (j *SQLite) DefaultAccount() (challenge.Account, error) {
	accountID, err := j.DefaultAccountID()
	if err != nil {
		return challenge.Account{}, err
	}
	return j.GetAccount(accountID)
}

// GetAccount loads one account with trades in submission order.
func (j *SQLite) GetAccount(accountID string) (challenge.Account, error) {
	var (
		a        challenge.Account
		failedAt sql.NullTime
	)
	err := j.db.QueryRow(`
		SELECT account_id, start_balance, phase, status, failed_at
		FROM accounts WHERE account_id = ?`, accountID).Scan(
		&a.ID, &a.StartBalance, &a.Phase, &a.Status, &failedAt,
	)
	if err == sql.ErrNoRows {
		return challenge.Account{}, fmt.Errorf("account %q not found", accountID)
	}
	if err != nil {
		return challenge.Account{}, err
	}
	if failedAt.Valid {
		a.FailedAt = failedAt.Time
	}

	a.Trades, err = j.ListTrades(accountID)
	if err != nil {
		return challenge.Account{}, err
	}
	return a, nil
}

// ListTrades returns the account's trades ordered by trade id. ULIDs sort
// by creation time, so this is submission order.
func (j *SQLite) ListTrades(accountID string) ([]challenge.Trade, error) {
	rows, err := j.db.Query(`
		SELECT `+tradeColumns+`
		FROM trades WHERE account_id = ?
		ORDER BY trade_id ASC`, accountID)
	if err != nil {
		return nil, err
	}
	return scanTrades(rows)
}

// ListTradesEnteredBetween returns trades whose entry_time is within
// [start, end), ordered by entry time. Daily rule reporting keys on entry
// time, so the CLI day views do too.
func (j *SQLite) ListTradesEnteredBetween(accountID string, start, end time.Time) ([]challenge.Trade, error) {
	rows, err := j.db.Query(`
		SELECT `+tradeColumns+`
		FROM trades WHERE account_id = ? AND entry_time >= ? AND entry_time < ?
		ORDER BY entry_time ASC`, accountID, start, end)
	if err != nil {
		return nil, err
	}
	return scanTrades(rows)
}

func scanTrades(rows *sql.Rows) ([]challenge.Trade, error) {
	defer rows.Close()

	var out []challenge.Trade
	for rows.Next() {
		var (
			t          challenge.Trade
			exitTime   sql.NullTime
			violations string
		)
		if err := rows.Scan(
			&t.ID, &t.Symbol, &t.EntryPrice, &t.ExitPrice, &t.Size,
			&t.Strategy, &t.Reason, &t.EntryTime, &exitTime,
			&t.PnL, &t.DurationSecs, &violations,
		); err != nil {
			return nil, err
		}
		if exitTime.Valid {
			t.ExitTime = exitTime.Time
		}
		t.Violations = splitViolations(violations)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListFailures returns the account's failure log, newest first.
func (j *SQLite) ListFailures(accountID string) ([]challenge.Failure, error) {
	rows, err := j.db.Query(`
		SELECT failure_id, account_id, rule, pnl_at_failure, balance_at_failure, created_at
		FROM failures WHERE account_id = ?
		ORDER BY created_at DESC, failure_id DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []challenge.Failure
	for rows.Next() {
		var f challenge.Failure
		if err := rows.Scan(
			&f.ID, &f.AccountID, &f.Rule, &f.PnLAtFailure, &f.BalanceAtFailure, &f.Timestamp,
		); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
