package challenge

import "time"

// Status is the lifecycle state of a challenge account.
type Status string

const (
	StatusActive      Status = "active"
	StatusStep1Passed Status = "step1_passed"
	StatusPassed      Status = "passed"
	StatusFailed      Status = "failed"
)

// Terminal reports whether the account can no longer accept trades.
func (s Status) Terminal() bool {
	return s == StatusPassed || s == StatusFailed
}

// Account is one funded-challenge attempt. Trades are kept in submission
// order, which is not necessarily chronological order by trade time.
type Account struct {
	ID           string
	StartBalance float64
	Phase        int // 1 or 2; only ever moves 1 -> 2
	Status       Status
	FailedAt     time.Time // zero until the account fails; written once
	Trades       []Trade
}

// Trade is one closed position. PnL and DurationSecs are derived at
// evaluation time and immutable afterward.
type Trade struct {
	ID         string
	Symbol     string
	EntryPrice float64
	ExitPrice  float64
	Size       float64
	Strategy   string
	Reason     string
	EntryTime  time.Time
	ExitTime   time.Time // may be zero; duration is then 0

	PnL          float64
	DurationSecs float64
	Violations   []string // ordered, human readable; empty means compliant
}

// ContractMultiplier scales price moves into account currency. The real
// margin math of the original product is intentionally simplified to a
// fixed multiplier of 100.
const ContractMultiplier = 100.0

// ComputePnL applies the fixed-multiplier P&L formula.
func ComputePnL(t Trade) float64 {
	return (t.ExitPrice - t.EntryPrice) * t.Size * ContractMultiplier
}

// Duration returns the holding time in seconds, or 0 when either
// timestamp is missing or the exit precedes the entry.
func Duration(t Trade) float64 {
	if t.EntryTime.IsZero() || t.ExitTime.IsZero() {
		return 0
	}
	d := t.ExitTime.Sub(t.EntryTime).Seconds()
	if d < 0 {
		return 0
	}
	return d
}

// Failure is the audit record written when a breach fails the account.
// It is created once and never mutated.
type Failure struct {
	ID               string
	AccountID        string
	Rule             string
	PnLAtFailure     float64
	BalanceAtFailure float64
	Timestamp        time.Time
}
