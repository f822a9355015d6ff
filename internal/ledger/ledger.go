// Package ledger owns the canonical list of transactions and keeps it in
// sync with a persistent key-value store.
//
// Every mutation writes the whole list through to the store under
// StorageKey before returning. There is no rollback: when the write fails
// the in-memory change stays and the error is returned, so memory and store
// differ until the next successful write.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"pocketledger/internal/core"
	"pocketledger/internal/kv"
	"pocketledger/internal/log"
)

// StorageKey is the only key the ledger reads and writes.
const StorageKey = "transactions"

var (
	ErrDuplicateID = errors.New("duplicate transaction id")
	ErrPersist     = errors.New("persist transactions")
)

// Ledger is the transaction collection in insertion order.
type Ledger struct {
	store  kv.Store
	logger *log.Logger
	seq    *Sequence
	now    func() time.Time

	txs    []core.Transaction
	totals core.Totals
	rev    uint64
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger; the default discards.
func WithLogger(l *log.Logger) Option {
	return func(lg *Ledger) { lg.logger = l.WithComponent(log.ComponentLedger) }
}

// WithClock replaces the clock used for new ids.
func WithClock(now func() time.Time) Option {
	return func(lg *Ledger) { lg.now = now }
}

// Open loads the ledger from store. An absent or unreadable value yields an
// empty ledger; only a failing store read is reported.
func Open(ctx context.Context, store kv.Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:  store,
		logger: log.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	value, ok, err := store.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", StorageKey, err)
	}

	var loaded []core.Transaction
	if ok {
		loaded, err = Decode(value)
		if err != nil {
			l.logger.WarnContext(ctx, "Stored transactions unreadable, starting empty",
				log.FieldStorageKey, StorageKey, log.FieldError, err)
			loaded = nil
		}
	}

	var last int64
	seen := make(map[int64]struct{}, len(loaded))
	for _, t := range loaded {
		if _, dup := seen[t.ID]; dup {
			l.logger.WarnContext(ctx, "Dropping stored transaction with duplicate id", log.FieldTxID, t.ID)
			continue
		}
		seen[t.ID] = struct{}{}
		l.txs = append(l.txs, t)
		l.totals = l.totals.Add(t)
		last = max(last, t.ID)
	}
	l.seq = NewSequence(last, l.now)

	l.logger.DebugContext(ctx, "Ledger loaded", log.FieldCount, len(l.txs), log.FieldOperation, log.OpLoad)
	return l, nil
}

// Add appends tx and persists the ledger. tx must carry an id not already
// present.
func (l *Ledger) Add(ctx context.Context, tx core.Transaction) error {
	if !tx.Type.IsValid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidType, tx.Type)
	}
	if l.index(tx.ID) >= 0 {
		return fmt.Errorf("%w: %d", ErrDuplicateID, tx.ID)
	}

	l.txs = append(l.txs, tx)
	l.totals = l.totals.Add(tx)
	l.seq.Observe(tx.ID)
	l.rev++

	fields := log.NewFields().
		WithTransaction(tx.ID, tx.Type.String(), tx.Amount.String(), tx.Category).
		WithOperation(log.OpAdd)
	l.logger.DebugContext(ctx, "Transaction added", fields.ToSlice()...)

	return l.persist(ctx)
}

// Record assigns the next id to d and adds it.
func (l *Ledger) Record(ctx context.Context, d core.Draft) (core.Transaction, error) {
	tx := d.WithID(l.seq.Next())
	if err := l.Add(ctx, tx); err != nil {
		return tx, err
	}
	return tx, nil
}

// Remove deletes the transaction with id. A missing id is not an error:
// removed is false and the ledger is unchanged.
func (l *Ledger) Remove(ctx context.Context, id int64) (removed bool, err error) {
	if i := l.index(id); i >= 0 {
		l.totals = l.totals.Sub(l.txs[i])
		l.txs = slices.Delete(l.txs, i, i+1)
		l.rev++
		removed = true
		l.logger.DebugContext(ctx, "Transaction removed", log.FieldTxID, id, log.FieldOperation, log.OpDelete)
	}
	return removed, l.persist(ctx)
}

// Clear removes every transaction. Clearing an empty ledger is fine.
func (l *Ledger) Clear(ctx context.Context) error {
	if len(l.txs) > 0 {
		l.rev++
	}
	l.txs = nil
	l.totals = core.Totals{}
	l.logger.DebugContext(ctx, "Ledger cleared", log.FieldOperation, log.OpClear)
	return l.persist(ctx)
}

// Get returns the transaction with id.
func (l *Ledger) Get(id int64) (core.Transaction, bool) {
	if i := l.index(id); i >= 0 {
		return l.txs[i], true
	}
	return core.Transaction{}, false
}

// Snapshot returns a copy of the transactions in insertion order.
func (l *Ledger) Snapshot() []core.Transaction {
	return slices.Clone(l.txs)
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.txs) }

// Revision changes every time the content of the ledger changes.
func (l *Ledger) Revision() uint64 { return l.rev }

// Totals returns the running income, expense and balance figures. They are
// maintained on every add and remove rather than recomputed.
func (l *Ledger) Totals() core.Totals { return l.totals }

func (l *Ledger) index(id int64) int {
	return slices.IndexFunc(l.txs, func(t core.Transaction) bool { return t.ID == id })
}

func (l *Ledger) persist(ctx context.Context) error {
	value, err := Encode(l.txs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := l.store.Set(ctx, StorageKey, value); err != nil {
		l.logger.ErrorContext(ctx, "Failed to persist transactions",
			log.FieldStorageKey, StorageKey, log.FieldError, err, log.FieldOperation, log.OpPersist)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
