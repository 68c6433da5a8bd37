package journal

const Schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id TEXT PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
	account_id TEXT PRIMARY KEY,
	start_balance REAL NOT NULL,
	phase INTEGER NOT NULL,
	status TEXT NOT NULL,
	failed_at DATETIME,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL REFERENCES accounts(account_id),
	symbol TEXT NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	size REAL NOT NULL,
	strategy TEXT NOT NULL,
	reason TEXT NOT NULL,
	entry_time DATETIME NOT NULL,
	exit_time DATETIME,
	pnl REAL NOT NULL,
	duration_secs REAL NOT NULL,
	violations TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS failures (
	failure_id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL REFERENCES accounts(account_id),
	rule TEXT NOT NULL,
	pnl_at_failure REAL NOT NULL,
	balance_at_failure REAL NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_account ON trades(account_id);
CREATE INDEX IF NOT EXISTS idx_trades_entry_time ON trades(entry_time);
CREATE INDEX IF NOT EXISTS idx_failures_account ON failures(account_id);
`
