// Package journal persists challenge accounts, their trade history, rule
// failures and web users in SQLite. ULID primary keys keep every listing
// in insertion order without a separate sequence column.
package journal

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/challenge"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/pkg/id"
)

// User is a registered web user. Only the bcrypt hash is ever stored.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type SQLite struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSQLite(path string, log *slog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db, log: log}, nil
}

// Seed creates the first challenge account when none exists yet and
// returns its id either way.
func (j *SQLite) Seed(startBalance float64) (string, error) {
	var existing string
	err := j.db.QueryRow(`SELECT account_id FROM accounts ORDER BY account_id LIMIT 1`).Scan(&existing)
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	accountID := id.New()
	_, err = j.db.Exec(`
		INSERT INTO accounts (account_id, start_balance, phase, status, failed_at, created_at)
		VALUES (?, ?, 1, ?, NULL, ?)`,
		accountID, startBalance, challenge.StatusActive, time.Now().UTC(),
	)
	if err != nil {
		return "", err
	}

	j.log.Info("seeded challenge account",
		slog.String("account_id", accountID),
		slog.Float64("start_balance", startBalance))
	return accountID, nil
}

// CreateUser stores a new user. The caller supplies the password hash.
func (j *SQLite) CreateUser(username, email, passwordHash string) (User, error) {
	u := User{
		ID:           id.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := j.db.Exec(`
		INSERT INTO users (user_id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return User{}, fmt.Errorf("username %q already exists", username)
		}
		return User{}, err
	}
	return u, nil
}

func (j *SQLite) GetUser(username string) (User, error) {
	var u User
	err := j.db.QueryRow(`
		SELECT user_id, username, email, password_hash, created_at
		FROM users WHERE username = ?`, username).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return User{}, fmt.Errorf("user %q not found", username)
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// SaveEvaluation commits one evaluation pass atomically: the annotated
// trade is appended, the account's phase/status/failed_at are updated and
// any failure records are written, all in a single transaction.
func (j *SQLite) SaveEvaluation(trade challenge.Trade, acct challenge.Account, failures []challenge.Failure) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO trades
		(trade_id, account_id, symbol, entry_price, exit_price, size, strategy, reason,
		 entry_time, exit_time, pnl, duration_secs, violations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trade.ID, acct.ID, trade.Symbol, trade.EntryPrice, trade.ExitPrice, trade.Size,
		trade.Strategy, trade.Reason, trade.EntryTime, nullableTime(trade.ExitTime),
		trade.PnL, trade.DurationSecs, joinViolations(trade.Violations),
	)
	if err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE accounts SET phase = ?, status = ?, failed_at = ?
		WHERE account_id = ?`,
		acct.Phase, acct.Status, nullableTime(acct.FailedAt), acct.ID,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	for _, f := range failures {
		fid := f.ID
		if fid == "" {
			fid = id.New()
		}
		_, err = tx.Exec(`
			INSERT INTO failures (failure_id, account_id, rule, pnl_at_failure, balance_at_failure, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			fid, f.AccountID, f.Rule, f.PnLAtFailure, f.BalanceAtFailure, f.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("insert failure: %w", err)
		}
	}

	return tx.Commit()
}

// ResetAccount clears the trade history and restores the account to an
// active phase-1 challenge at the given start balance. Failure records are
// deliberately kept: they are the audit trail of previous attempts.
func (j *SQLite) ResetAccount(accountID string, startBalance float64) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trades WHERE account_id = ?`, accountID); err != nil {
		return fmt.Errorf("delete trades: %w", err)
	}
	_, err = tx.Exec(`
		UPDATE accounts SET start_balance = ?, phase = 1, status = ?, failed_at = NULL
		WHERE account_id = ?`,
		startBalance, challenge.StatusActive, accountID,
	)
	if err != nil {
		return fmt.Errorf("reset account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	j.log.Info("account reset", slog.String("account_id", accountID))
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// Violations live in one TEXT column, pipe separated, mirroring how the
// product has always displayed them.
const violationSep = " | "

func joinViolations(v []string) string {
	return strings.Join(v, violationSep)
}

func splitViolations(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, violationSep)
}
