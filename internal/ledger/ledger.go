// Package ledger owns the canonical in-memory collections of manual
// expenses, paychecks and recurring expense definitions.
//
// The ledger itself never touches storage; persistence is orchestrated by
// the services layer through the kvstore and snapshot collaborators.
package ledger

import (
	"errors"
	"sync"

	"stack/internal/core"
)

// ErrIndexOutOfRange is returned by the Remove operations when the index
// does not map to the currently displayed order.
var ErrIndexOutOfRange = errors.New("index out of range")

// Snapshot is a copy of the ledger's three collections. The slices are
// fresh on every call, so holders never observe later mutations.
type Snapshot struct {
	Expenses  []core.Expense
	Paychecks []core.Paycheck
	Recurring []core.RecurringExpense
}

// Listener receives the post-mutation state after every change.
type Listener func(Snapshot)

// Ledger is a single-writer state container. Collections keep insertion
// order; order carries no meaning for calculations but is what index-based
// removal maps against.
type Ledger struct {
	mu        sync.RWMutex
	expenses  []core.Expense
	paychecks []core.Paycheck
	recurring []core.RecurringExpense

	listenerMu sync.Mutex
	listeners  []Listener
}

func New() *Ledger {
	return &Ledger{}
}

// Subscribe registers a listener notified after every mutation with a copy
// of the new state. Listeners run synchronously on the mutating goroutine.
func (l *Ledger) Subscribe(fn Listener) {
	l.listenerMu.Lock()
	defer l.listenerMu.Unlock()
	l.listeners = append(l.listeners, fn)
}

// View returns an immutable copy of all three collections taken under one
// read lock, so concurrent readers never see a mix of old and new state.
func (l *Ledger) View() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() Snapshot {
	return Snapshot{
		Expenses:  append([]core.Expense(nil), l.expenses...),
		Paychecks: append([]core.Paycheck(nil), l.paychecks...),
		Recurring: append([]core.RecurringExpense(nil), l.recurring...),
	}
}

func (l *Ledger) AddExpense(e core.Expense) {
	l.mu.Lock()
	l.expenses = append(l.expenses, e)
	snap := l.snapshotLocked()
	l.mu.Unlock()
	l.notify(snap)
}

func (l *Ledger) AddPaycheck(p core.Paycheck) {
	l.mu.Lock()
	l.paychecks = append(l.paychecks, p)
	snap := l.snapshotLocked()
	l.mu.Unlock()
	l.notify(snap)
}

func (l *Ledger) AddRecurring(r core.RecurringExpense) {
	l.mu.Lock()
	l.recurring = append(l.recurring, r)
	snap := l.snapshotLocked()
	l.mu.Unlock()
	l.notify(snap)
}

// RemoveExpense deletes the expense at the given display index.
func (l *Ledger) RemoveExpense(index int) error {
	l.mu.Lock()
	if index < 0 || index >= len(l.expenses) {
		l.mu.Unlock()
		return ErrIndexOutOfRange
	}
	l.expenses = append(l.expenses[:index], l.expenses[index+1:]...)
	snap := l.snapshotLocked()
	l.mu.Unlock()
	l.notify(snap)
	return nil
}

// RemovePaycheck deletes the paycheck at the given display index.
func (l *Ledger) RemovePaycheck(index int) error {
	l.mu.Lock()
	if index < 0 || index >= len(l.paychecks) {
		l.mu.Unlock()
		return ErrIndexOutOfRange
	}
	l.paychecks = append(l.paychecks[:index], l.paychecks[index+1:]...)
	snap := l.snapshotLocked()
	l.mu.Unlock()
	l.notify(snap)
	return nil
}

// RemoveRecurring deletes the recurring definition at the given display
// index. Already-materialized manual expenses are untouched.
func (l *Ledger) RemoveRecurring(index int) error {
	l.mu.Lock()
	if index < 0 || index >= len(l.recurring) {
		l.mu.Unlock()
		return ErrIndexOutOfRange
	}
	l.recurring = append(l.recurring[:index], l.recurring[index+1:]...)
	snap := l.snapshotLocked()
	l.mu.Unlock()
	l.notify(snap)
	return nil
}

// ReplaceAll swaps all three collections under a single write lock, so the
// replacement is atomic from any reader's perspective. Used by snapshot
// load and the autosave warmup.
func (l *Ledger) ReplaceAll(s Snapshot) {
	l.mu.Lock()
	l.expenses = append([]core.Expense(nil), s.Expenses...)
	l.paychecks = append([]core.Paycheck(nil), s.Paychecks...)
	l.recurring = append([]core.RecurringExpense(nil), s.Recurring...)
	snap := l.snapshotLocked()
	l.mu.Unlock()
	l.notify(snap)
}

func (l *Ledger) notify(snap Snapshot) {
	l.listenerMu.Lock()
	listeners := append([]Listener(nil), l.listeners...)
	l.listenerMu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}
