package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pocketledger/internal/core"
	"pocketledger/internal/ledger"
	"pocketledger/internal/log"
	"pocketledger/internal/present"
)

// ErrNotFound is returned when editing a transaction that does not exist.
var ErrNotFound = errors.New("transaction not found")

// Notifier is told about every committed mutation.
type Notifier interface {
	NotifyChange(ctx context.Context, ev core.ChangeEvent) error
}

// LedgerService is the single controller in front of the ledger. It owns
// the ledger and the active filter, asks for confirmation before
// destructive operations and serializes every operation.
type LedgerService struct {
	mu       sync.Mutex
	ledger   *ledger.Ledger
	filter   core.Filter
	confirm  Confirmer
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time
}

// NewLedgerService wraps l. A nil confirmer declines every destructive
// operation; a nil notifier disables notifications.
func NewLedgerService(l *ledger.Ledger, confirm Confirmer, notifier Notifier, logger *log.Logger) *LedgerService {
	if confirm == nil {
		confirm = NeverConfirm
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &LedgerService{
		ledger:   l,
		filter:   core.FilterAll,
		confirm:  confirm,
		notifier: notifier,
		logger:   logger.WithComponent(log.ComponentService),
		now:      time.Now,
	}
}

// Add validates d and records it.
func (s *LedgerService) Add(ctx context.Context, d core.Draft) (core.Transaction, error) {
	if err := d.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.ledger.Record(ctx, d)
	if err != nil {
		return tx, fmt.Errorf("add transaction: %w", err)
	}
	fields := log.NewFields().
		WithTransaction(tx.ID, tx.Type.String(), tx.Amount.String(), tx.Category).
		WithOperation(log.OpAdd)
	s.logger.InfoContext(ctx, "Transaction recorded", fields.ToSlice()...)
	s.notify(ctx, log.OpAdd, tx.ID)
	return tx, nil
}

// Delete removes the transaction with id once confirmed. It reports whether
// a transaction was removed; declining or an unknown id is not an error.
func (s *LedgerService) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ok, err := s.ask(ctx, DeletePrompt); !ok {
		return false, err
	}
	removed, err := s.ledger.Remove(ctx, id)
	if err != nil {
		return removed, fmt.Errorf("delete transaction %d: %w", id, err)
	}
	if removed {
		s.logger.InfoContext(ctx, "Transaction deleted", log.FieldTxID, id, log.FieldOperation, log.OpDelete)
		s.notify(ctx, log.OpDelete, id)
	}
	return removed, nil
}

// Edit replaces the transaction with id by d under a new id. Like a delete
// it needs confirmation; declining returns the zero transaction and false.
func (s *LedgerService) Edit(ctx context.Context, id int64, d core.Draft) (core.Transaction, bool, error) {
	if err := d.Validate(); err != nil {
		return core.Transaction{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ledger.Get(id); !ok {
		return core.Transaction{}, false, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if ok, err := s.ask(ctx, DeletePrompt); !ok {
		return core.Transaction{}, false, err
	}
	if _, err := s.ledger.Remove(ctx, id); err != nil {
		return core.Transaction{}, false, fmt.Errorf("edit transaction %d: %w", id, err)
	}
	tx, err := s.ledger.Record(ctx, d)
	if err != nil {
		return tx, false, fmt.Errorf("edit transaction %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "Transaction edited", log.FieldTxID, tx.ID, "replaces", id, log.FieldOperation, log.OpEdit)
	s.notify(ctx, log.OpEdit, tx.ID)
	return tx, true, nil
}

// Clear removes every transaction once confirmed.
func (s *LedgerService) Clear(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ok, err := s.ask(ctx, ClearPrompt); !ok {
		return false, err
	}
	n := s.ledger.Len()
	if err := s.ledger.Clear(ctx); err != nil {
		return true, fmt.Errorf("clear transactions: %w", err)
	}
	s.logger.InfoContext(ctx, "Ledger cleared", log.FieldCount, n, log.FieldOperation, log.OpClear)
	s.notify(ctx, log.OpClear, 0)
	return true, nil
}

// SetFilter changes the active filter.
func (s *LedgerService) SetFilter(f core.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// Filter returns the active filter.
func (s *LedgerService) Filter() core.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Summary renders the ledger under the active filter.
func (s *LedgerService) Summary() present.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return present.Render(s.ledger.Snapshot(), s.filter)
}

// SummaryFor renders the ledger under f without changing the active filter.
// It also returns the ledger revision the summary was computed from.
func (s *LedgerService) SummaryFor(f core.Filter) (present.Summary, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return present.Render(s.ledger.Snapshot(), f), s.ledger.Revision()
}

// Revision returns the current ledger revision.
func (s *LedgerService) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Revision()
}

// Snapshot returns a copy of the transactions in insertion order.
func (s *LedgerService) Snapshot() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot()
}

// Get looks up a single transaction.
func (s *LedgerService) Get(id int64) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Get(id)
}

func (s *LedgerService) ask(ctx context.Context, prompt string) (bool, error) {
	ok, err := s.confirm.Confirm(ctx, prompt)
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		s.logger.DebugContext(ctx, "Operation declined", "prompt", prompt)
	}
	return ok, nil
}

func (s *LedgerService) notify(ctx context.Context, op string, id int64) {
	if s.notifier == nil {
		return
	}
	ev := core.ChangeEvent{
		Operation: op,
		ID:        id,
		Revision:  s.ledger.Revision(),
		Count:     s.ledger.Len(),
		At:        s.now().UTC(),
	}
	if err := s.notifier.NotifyChange(ctx, ev); err != nil {
		// The ledger is already persisted; a lost notification is only logged.
		s.logger.ErrorContext(ctx, "Failed to publish change notification",
			log.FieldOperation, op, log.FieldTxID, id, log.FieldError, err)
	}
}
