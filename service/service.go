// Package service runs the read-evaluate-write cycle around the challenge
// engine. The engine itself is pure; this layer owns the per-account
// serialization point, the persistence transaction and the notifications.
package service

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/challenge"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/journal"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/notify"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/pkg/id"
)

type Service struct {
	journal      *journal.SQLite
	notifier     notify.TextNotifier
	log          *slog.Logger
	startBalance float64

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(j *journal.SQLite, notifier notify.TextNotifier, log *slog.Logger, startBalance float64) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{
		journal:      j,
		notifier:     notifier,
		log:          log,
		startBalance: startBalance,
		locks:        map[string]*sync.Mutex{},
	}
}

// accountLock guarantees at most one in-flight evaluation per account.
// Two concurrent submissions against the same account would otherwise
// both read the same balance/peak and race the phase transition.
func (s *Service) accountLock(accountID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[accountID] = l
	}
	return l
}

// SubmitTrade validates the candidate, evaluates it against the default
// account and commits trade, account state and failure records as one
// transaction. The annotated trade and updated account are returned.
func (s *Service) SubmitTrade(candidate challenge.Trade) (challenge.Trade, challenge.Account, error) {
	if err := challenge.ValidateCandidate(candidate); err != nil {
		return challenge.Trade{}, challenge.Account{}, err
	}

	accountID, err := s.journal.DefaultAccountID()
	if err != nil {
		return challenge.Trade{}, challenge.Account{}, err
	}

	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	account, err := s.journal.GetAccount(accountID)
	if err != nil {
		return challenge.Trade{}, challenge.Account{}, err
	}

	candidate.ID = id.New()
	verdict, err := challenge.Evaluate(account, candidate, time.Now().UTC())
	if err != nil {
		return challenge.Trade{}, challenge.Account{}, err
	}

	if err := s.journal.SaveEvaluation(verdict.Trade, verdict.Account, verdict.Failures); err != nil {
		return challenge.Trade{}, challenge.Account{}, err
	}

	s.log.Info("trade evaluated",
		slog.String("trade_id", verdict.Trade.ID),
		slog.String("symbol", verdict.Trade.Symbol),
		slog.Float64("pnl", verdict.Trade.PnL),
		slog.Int("violations", len(verdict.Violations)),
		slog.String("status", string(verdict.Account.Status)))

	s.announce(account, verdict.Account)

	return verdict.Trade, verdict.Account, nil
}

// announce pushes a notification when the evaluation moved the account
// to a new phase or a terminal state. Delivery failures are logged by the
// notifier and never fail the submission.
func (s *Service) announce(before, after challenge.Account) {
	switch {
	case after.Status == challenge.StatusFailed && before.Status != challenge.StatusFailed:
		_ = s.notifier.SendText(fmt.Sprintf(
			"Challenge failed: account %s breached a drawdown limit (balance $%.2f).",
			after.ID, challenge.CurrentBalance(after)))
	case after.Status == challenge.StatusPassed && before.Status != challenge.StatusPassed:
		_ = s.notifier.SendText(fmt.Sprintf(
			"Challenge passed: account %s cleared the phase 2 profit target.", after.ID))
	case after.Phase == 2 && before.Phase == 1:
		_ = s.notifier.SendText(fmt.Sprintf(
			"Phase 1 passed: account %s advanced to phase 2.", after.ID))
	}
}

// Dashboard is the aggregate view rendered by the web UI and the CLI.
type Dashboard struct {
	Account  challenge.Account
	Summary  challenge.Summary
	Curve    []challenge.EquityPoint
	Failures []challenge.Failure
}

func (s *Service) Dashboard(now time.Time) (Dashboard, error) {
	account, err := s.journal.DefaultAccount()
	if err != nil {
		return Dashboard{}, err
	}

	failures, err := s.journal.ListFailures(account.ID)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Account:  account,
		Summary:  challenge.Summarize(account, now),
		Curve:    challenge.EquityCurve(account),
		Failures: failures,
	}, nil
}

// Reset clears the default account's trade history and restores it to an
// active phase-1 challenge. This is the explicit, operator-invoked reset:
// failure detection never triggers it on its own.
func (s *Service) Reset() error {
	accountID, err := s.journal.DefaultAccountID()
	if err != nil {
		return err
	}

	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.journal.ResetAccount(accountID, s.startBalance); err != nil {
		return err
	}

	_ = s.notifier.SendText(fmt.Sprintf("Account %s reset to a fresh challenge.", accountID))
	return nil
}
