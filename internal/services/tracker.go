// Package services orchestrates the ledger, the autosave store, the
// snapshot manager and the forecast engine behind one facade.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stack/internal/core"
	"stack/internal/forecast"
	"stack/internal/kvstore"
	"stack/internal/ledger"
	applog "stack/internal/log"
	"stack/internal/snapshot"
)

// Fixed autosave keys; each holds a JSON array in the snapshot entity shape.
const (
	keyExpenses  = "expenses"
	keyPaychecks = "paychecks"
	keyRecurring = "recurringExpenses"
)

// ErrPersistFailed signals that a mutation was applied in memory but could
// not be written to the autosave store. The in-memory state stands; it and
// the persisted copy may diverge until the next successful save.
var ErrPersistFailed = errors.New("persist failed")

// Tracker is the application facade the HTTP layer talks to.
type Tracker struct {
	ledger    *ledger.Ledger
	store     kvstore.Store
	snapshots *snapshot.Manager
	cadence   forecast.Cadence
	threshold core.Money
	logger    *applog.Logger
}

func NewTracker(l *ledger.Ledger, store kvstore.Store, snaps *snapshot.Manager, cadence forecast.Cadence, threshold core.Money, logger *applog.Logger) *Tracker {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentTracker)
	}
	return &Tracker{
		ledger:    l,
		store:     store,
		snapshots: snaps,
		cadence:   cadence,
		threshold: threshold,
		logger:    logger,
	}
}

// Subscribe registers a listener for post-mutation ledger state.
func (t *Tracker) Subscribe(fn ledger.Listener) {
	t.ledger.Subscribe(fn)
}

// Threshold returns the configured low-balance threshold.
func (t *Tracker) Threshold() core.Money {
	return t.threshold
}

// Load warms the ledger from the autosave store. A missing or malformed
// entry falls back to an empty collection rather than failing the startup;
// a corrupted autosave is unrecoverable without a named snapshot.
func (t *Tracker) Load(ctx context.Context) {
	var snap ledger.Snapshot
	loadCollection(ctx, t, keyExpenses, &snap.Expenses)
	loadCollection(ctx, t, keyPaychecks, &snap.Paychecks)
	loadCollection(ctx, t, keyRecurring, &snap.Recurring)
	t.ledger.ReplaceAll(snap)

	t.logger.InfoContext(ctx, "Ledger loaded from autosave",
		"expenses", len(snap.Expenses),
		"paychecks", len(snap.Paychecks),
		"recurring", len(snap.Recurring))
}

func loadCollection[T any](ctx context.Context, t *Tracker, key string, dst *[]T) {
	data, err := t.store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return
	}
	if err != nil {
		t.logger.WarnContext(ctx, "Autosave read failed, starting empty",
			applog.FieldKey, key, applog.FieldError, err)
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		*dst = nil
		t.logger.WarnContext(ctx, "Autosave entry malformed, starting empty",
			applog.FieldKey, key, applog.FieldError, err)
	}
}

// AddExpense validates, records and persists a manual expense.
func (t *Tracker) AddExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	t.ledger.AddExpense(e)
	return t.persist(ctx)
}

// AddPaycheck validates, records and persists a manual paycheck.
func (t *Tracker) AddPaycheck(ctx context.Context, p core.Paycheck) error {
	if err := p.Validate(); err != nil {
		return err
	}
	t.ledger.AddPaycheck(p)
	return t.persist(ctx)
}

// AddRecurring validates, records and persists a recurring definition.
func (t *Tracker) AddRecurring(ctx context.Context, r core.RecurringExpense) error {
	if err := r.Validate(); err != nil {
		return err
	}
	t.ledger.AddRecurring(r)
	return t.persist(ctx)
}

// RemoveExpense deletes the expense at the given display index.
func (t *Tracker) RemoveExpense(ctx context.Context, index int) error {
	if err := t.ledger.RemoveExpense(index); err != nil {
		return err
	}
	return t.persist(ctx)
}

// RemovePaycheck deletes the paycheck at the given display index.
func (t *Tracker) RemovePaycheck(ctx context.Context, index int) error {
	if err := t.ledger.RemovePaycheck(index); err != nil {
		return err
	}
	return t.persist(ctx)
}

// RemoveRecurring deletes the recurring definition at the given display index.
func (t *Tracker) RemoveRecurring(ctx context.Context, index int) error {
	if err := t.ledger.RemoveRecurring(index); err != nil {
		return err
	}
	return t.persist(ctx)
}

// Expenses returns the manual expenses in display order.
func (t *Tracker) Expenses() []core.Expense {
	return t.ledger.View().Expenses
}

// Paychecks returns the manual paychecks in display order.
func (t *Tracker) Paychecks() []core.Paycheck {
	return t.ledger.View().Paychecks
}

// Recurring returns the recurring definitions in display order.
func (t *Tracker) Recurring() []core.RecurringExpense {
	return t.ledger.View().Recurring
}

// View builds the immutable forecast view of the current ledger state.
func (t *Tracker) View() forecast.View {
	snap := t.ledger.View()
	return forecast.View{
		Expenses:  snap.Expenses,
		Paychecks: snap.Paychecks,
		Recurring: snap.Recurring,
		Cadence:   t.cadence,
	}
}

// Balance returns the account balance as of the given instant.
func (t *Tracker) Balance(asOf time.Time) core.Money {
	return forecast.Balance(t.View(), asOf)
}

// Projection returns the projected balance for a date and its health tier.
func (t *Tracker) Projection(date time.Time) (core.Money, forecast.HealthTier) {
	projected := forecast.ProjectedBalance(t.View(), date)
	return projected, forecast.ClassifyBalance(projected, t.threshold)
}

// SaveSnapshot exports the current ledger state under a user-supplied name
// and returns the snapshot's filename.
func (t *Tracker) SaveSnapshot(ctx context.Context, name string) (string, error) {
	snap := t.ledger.View()
	filename, err := t.snapshots.Save(name, snapshot.Snapshot{
		Expenses:          snap.Expenses,
		Paychecks:         snap.Paychecks,
		RecurringExpenses: snap.Recurring,
	})
	if err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	t.logger.InfoContext(ctx, "Snapshot saved", applog.FieldSnapshot, filename)
	return filename, nil
}

// ListSnapshots enumerates stored snapshots, newest first.
func (t *Tracker) ListSnapshots() ([]snapshot.FileInfo, error) {
	return t.snapshots.List()
}

// LoadSnapshot replaces the ledger's collections with a stored snapshot.
// The replacement is atomic: on any read or decode failure the ledger is
// left untouched. The restored state is re-persisted to the autosave store.
func (t *Tracker) LoadSnapshot(ctx context.Context, filename string) error {
	s, err := t.snapshots.Load(filename)
	if err != nil {
		return err
	}
	t.ledger.ReplaceAll(ledger.Snapshot{
		Expenses:  s.Expenses,
		Paychecks: s.Paychecks,
		Recurring: s.RecurringExpenses,
	})
	t.logger.InfoContext(ctx, "Snapshot restored",
		applog.FieldSnapshot, filename,
		"expenses", len(s.Expenses),
		"paychecks", len(s.Paychecks),
		"recurring", len(s.RecurringExpenses))
	return t.persist(ctx)
}

// DeleteSnapshot removes a stored snapshot file.
func (t *Tracker) DeleteSnapshot(ctx context.Context, filename string) error {
	if err := t.snapshots.Delete(filename); err != nil {
		return err
	}
	t.logger.InfoContext(ctx, "Snapshot deleted", applog.FieldSnapshot, filename)
	return nil
}

// persist writes all three collections to the autosave store. Failures are
// logged and reported as ErrPersistFailed; the in-memory mutation stands
// either way.
func (t *Tracker) persist(ctx context.Context) error {
	snap := t.ledger.View()

	var errs []error
	persistCollection(ctx, t, keyExpenses, snap.Expenses, &errs)
	persistCollection(ctx, t, keyPaychecks, snap.Paychecks, &errs)
	persistCollection(ctx, t, keyRecurring, snap.Recurring, &errs)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrPersistFailed, errors.Join(errs...))
	}
	return nil
}

func persistCollection[T any](ctx context.Context, t *Tracker, key string, items []T, errs *[]error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		t.logger.ErrorContext(ctx, "Autosave encode failed",
			applog.FieldKey, key, applog.FieldError, err)
		*errs = append(*errs, fmt.Errorf("encode %s: %w", key, err))
		return
	}
	if err := t.store.Set(ctx, key, data); err != nil {
		t.logger.ErrorContext(ctx, "Autosave write failed",
			applog.FieldKey, key, applog.FieldError, err)
		*errs = append(*errs, fmt.Errorf("write %s: %w", key, err))
	}
}
