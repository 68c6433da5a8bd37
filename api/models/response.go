package models

import (
	"time"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/challenge"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/service"
)

// ErrorResponse is the uniform error envelope
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains machine and human readable error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TokenResponse is returned on successful register/login
type TokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// AccountResponse is the account's public state
type AccountResponse struct {
	ID             string  `json:"id"`
	StartBalance   float64 `json:"start_balance"`
	CurrentBalance float64 `json:"current_balance"`
	Phase          int     `json:"phase"`
	Status         string  `json:"status"`
	FailedAt       string  `json:"failed_at,omitempty"`
}

// TradeResponse is one evaluated trade
type TradeResponse struct {
	ID           string   `json:"id"`
	Symbol       string   `json:"symbol"`
	EntryPrice   float64  `json:"entry_price"`
	ExitPrice    float64  `json:"exit_price"`
	Size         float64  `json:"size"`
	Strategy     string   `json:"strategy,omitempty"`
	Reason       string   `json:"reason,omitempty"`
	EntryTime    string   `json:"entry_time"`
	ExitTime     string   `json:"exit_time,omitempty"`
	PnL          float64  `json:"pnl"`
	DurationSecs float64  `json:"duration_secs"`
	Violations   []string `json:"violations"`
}

// SubmitTradeResponse pairs the annotated trade with the account state it
// produced
type SubmitTradeResponse struct {
	Trade   TradeResponse   `json:"trade"`
	Account AccountResponse `json:"account"`
}

// EquityPointResponse is one step of the equity curve
type EquityPointResponse struct {
	Time    string  `json:"time"`
	Balance float64 `json:"balance"`
}

// FailureResponse is one audit record of a rule breach
type FailureResponse struct {
	ID               string  `json:"id"`
	Rule             string  `json:"rule"`
	PnLAtFailure     float64 `json:"pnl_at_failure"`
	BalanceAtFailure float64 `json:"balance_at_failure"`
	Timestamp        string  `json:"timestamp"`
}

// DashboardResponse is the aggregate challenge view
type DashboardResponse struct {
	Account  AccountResponse       `json:"account"`
	Summary  challenge.Summary     `json:"summary"`
	Curve    []EquityPointResponse `json:"equity_curve"`
	Failures []FailureResponse     `json:"failures"`
}

func FromAccount(a challenge.Account) AccountResponse {
	resp := AccountResponse{
		ID:             a.ID,
		StartBalance:   a.StartBalance,
		CurrentBalance: challenge.CurrentBalance(a),
		Phase:          a.Phase,
		Status:         string(a.Status),
	}
	if !a.FailedAt.IsZero() {
		resp.FailedAt = a.FailedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func FromTrade(t challenge.Trade) TradeResponse {
	resp := TradeResponse{
		ID:           t.ID,
		Symbol:       t.Symbol,
		EntryPrice:   t.EntryPrice,
		ExitPrice:    t.ExitPrice,
		Size:         t.Size,
		Strategy:     t.Strategy,
		Reason:       t.Reason,
		EntryTime:    t.EntryTime.UTC().Format(TimeLayout),
		PnL:          t.PnL,
		DurationSecs: t.DurationSecs,
		Violations:   t.Violations,
	}
	if resp.Violations == nil {
		resp.Violations = []string{}
	}
	if !t.ExitTime.IsZero() {
		resp.ExitTime = t.ExitTime.UTC().Format(TimeLayout)
	}
	return resp
}

func FromFailure(f challenge.Failure) FailureResponse {
	return FailureResponse{
		ID:               f.ID,
		Rule:             f.Rule,
		PnLAtFailure:     f.PnLAtFailure,
		BalanceAtFailure: f.BalanceAtFailure,
		Timestamp:        f.Timestamp.UTC().Format(time.RFC3339),
	}
}

func FromDashboard(d service.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		Account:  FromAccount(d.Account),
		Summary:  d.Summary,
		Curve:    []EquityPointResponse{},
		Failures: []FailureResponse{},
	}
	for _, p := range d.Curve {
		resp.Curve = append(resp.Curve, EquityPointResponse{
			Time:    p.Time.UTC().Format(TimeLayout),
			Balance: p.Balance,
		})
	}
	for _, f := range d.Failures {
		resp.Failures = append(resp.Failures, FromFailure(f))
	}
	return resp
}
