package models

import (
	"fmt"
	"time"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/challenge"
)

// TimeLayout is the timestamp format the trade form has always used.
const TimeLayout = "2006-01-02 15:04:05"

// RegisterRequest creates a web user
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest authenticates a web user
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TradeRequest is one closed trade submitted for evaluation
type TradeRequest struct {
	Symbol     string  `json:"symbol" binding:"required"`
	EntryPrice float64 `json:"entry_price" binding:"required,gt=0"`
	ExitPrice  float64 `json:"exit_price" binding:"required,gt=0"`
	Size       float64 `json:"size" binding:"required,gt=0"`
	Strategy   string  `json:"strategy"`
	Reason     string  `json:"reason"`
	EntryTime  string  `json:"entry_time" binding:"required"` // YYYY-MM-DD HH:MM:SS
	ExitTime   string  `json:"exit_time,omitempty"`
}

// ToTrade parses the request into a candidate trade. Timestamp parsing
// happens here, at the interface boundary; the engine never sees a
// malformed timestamp.
func (r TradeRequest) ToTrade() (challenge.Trade, error) {
	entryTime, err := time.ParseInLocation(TimeLayout, r.EntryTime, time.UTC)
	if err != nil {
		return challenge.Trade{}, fmt.Errorf("entry_time: expected %q: %w", TimeLayout, err)
	}

	var exitTime time.Time
	if r.ExitTime != "" {
		exitTime, err = time.ParseInLocation(TimeLayout, r.ExitTime, time.UTC)
		if err != nil {
			return challenge.Trade{}, fmt.Errorf("exit_time: expected %q: %w", TimeLayout, err)
		}
	}

	return challenge.Trade{
		Symbol:     r.Symbol,
		EntryPrice: r.EntryPrice,
		ExitPrice:  r.ExitPrice,
		Size:       r.Size,
		Strategy:   r.Strategy,
		Reason:     r.Reason,
		EntryTime:  entryTime,
		ExitTime:   exitTime,
	}, nil
}
