package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"stack/internal/core"
	"stack/internal/forecast"
	"stack/internal/kvstore"
	"stack/internal/ledger"
	applog "stack/internal/log"
	"stack/internal/snapshot"
)

var testDate = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

func quietLogger() *applog.Logger {
	return applog.New(applog.Config{
		Component: applog.ComponentTracker,
		Handler:   slog.NewTextHandler(io.Discard, nil),
	})
}

func newTestTracker(t *testing.T, store kvstore.Store) *Tracker {
	t.Helper()
	snaps, err := snapshot.NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cadence, err := forecast.NewCadence(nil, forecast.DefaultPaycheckInterval)
	if err != nil {
		t.Fatal(err)
	}
	return NewTracker(ledger.New(), store, snaps, cadence, forecast.DefaultThreshold, quietLogger())
}

// failingStore rejects every write but answers reads from the wrapped store.
type failingStore struct {
	kvstore.Store
}

func (f failingStore) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestAddValidates(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t, kvstore.NewMemory())

	bad := core.Expense{ID: "e1", Title: "", Amount: core.MoneyFromInt(1), Date: testDate}
	if err := tr.AddExpense(ctx, bad); !errors.Is(err, core.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if len(tr.Expenses()) != 0 {
		t.Fatalf("invalid expense must not be recorded")
	}
}

func TestAutosaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()

	tr := newTestTracker(t, store)
	if err := tr.AddExpense(ctx, core.NewExpense("Groceries", core.MoneyFromInt(85), testDate)); err != nil {
		t.Fatal(err)
	}
	if err := tr.AddPaycheck(ctx, core.NewPaycheck(core.MoneyFromInt(2000), testDate)); err != nil {
		t.Fatal(err)
	}
	if err := tr.AddRecurring(ctx, core.NewRecurringExpense("Rent", core.MoneyFromInt(1200), testDate, core.Monthly)); err != nil {
		t.Fatal(err)
	}

	// A fresh tracker over the same store sees the saved state.
	restored := newTestTracker(t, store)
	restored.Load(ctx)

	if got := restored.Expenses(); len(got) != 1 || got[0].Title != "Groceries" {
		t.Fatalf("expenses not restored: %v", got)
	}
	if got := restored.Paychecks(); len(got) != 1 || !got[0].Amount.Equal(core.MoneyFromInt(2000)) {
		t.Fatalf("paychecks not restored: %v", got)
	}
	if got := restored.Recurring(); len(got) != 1 || got[0].RecurrenceType != core.Monthly {
		t.Fatalf("recurring not restored: %v", got)
	}
}

func TestLoadMalformedEntryStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	if err := store.Set(ctx, "expenses", []byte("{broken")); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, "paychecks", []byte(`[{"id":"p1","amount":500,"date":"2025-04-01T00:00:00Z"}]`)); err != nil {
		t.Fatal(err)
	}

	tr := newTestTracker(t, store)
	tr.Load(ctx)

	if got := tr.Expenses(); len(got) != 0 {
		t.Fatalf("malformed entry should load as empty, got %v", got)
	}
	// The healthy entry still loads.
	if got := tr.Paychecks(); len(got) != 1 || !got[0].Amount.Equal(core.MoneyFromInt(500)) {
		t.Fatalf("paychecks should have loaded: %v", got)
	}
}

func TestPersistFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t, failingStore{kvstore.NewMemory()})

	err := tr.AddExpense(ctx, core.NewExpense("Coffee", core.MoneyFromInt(4), testDate))
	if !errors.Is(err, ErrPersistFailed) {
		t.Fatalf("expected ErrPersistFailed, got %v", err)
	}
	if got := tr.Expenses(); len(got) != 1 || got[0].Title != "Coffee" {
		t.Fatalf("mutation should survive a persist failure: %v", got)
	}
}

func TestRemovePropagatesIndexError(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t, kvstore.NewMemory())

	if err := tr.RemoveExpense(ctx, 0); !errors.Is(err, ledger.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestRemovePersists(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	tr := newTestTracker(t, store)

	if err := tr.AddPaycheck(ctx, core.NewPaycheck(core.MoneyFromInt(1000), testDate)); err != nil {
		t.Fatal(err)
	}
	if err := tr.RemovePaycheck(ctx, 0); err != nil {
		t.Fatal(err)
	}

	restored := newTestTracker(t, store)
	restored.Load(ctx)
	if got := restored.Paychecks(); len(got) != 0 {
		t.Fatalf("removal was not persisted: %v", got)
	}
}

func TestBalanceAndProjection(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t, kvstore.NewMemory())

	if err := tr.AddPaycheck(ctx, core.NewPaycheck(core.MoneyFromInt(500), testDate)); err != nil {
		t.Fatal(err)
	}
	if err := tr.AddExpense(ctx, core.NewExpense("Utilities", core.MoneyFromInt(200), testDate.AddDate(0, 0, 10))); err != nil {
		t.Fatal(err)
	}

	if got := tr.Balance(testDate); !got.Equal(core.MoneyFromInt(500)) {
		t.Fatalf("balance = %s, want 500", got)
	}

	projected, tier := tr.Projection(testDate)
	if !projected.Equal(core.MoneyFromInt(300)) {
		t.Fatalf("projected = %s, want 300", projected)
	}
	if tier != forecast.TierLow {
		t.Fatalf("tier = %s, want low", tier)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	tr := newTestTracker(t, store)

	if err := tr.AddExpense(ctx, core.NewExpense("Groceries", core.MoneyFromInt(85), testDate)); err != nil {
		t.Fatal(err)
	}

	filename, err := tr.SaveSnapshot(ctx, "before cleanup")
	if err != nil {
		t.Fatal(err)
	}

	infos, err := tr.ListSnapshots()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].Filename != filename {
		t.Fatalf("unexpected listing: %v", infos)
	}

	// Wipe the live state, then restore.
	if err := tr.RemoveExpense(ctx, 0); err != nil {
		t.Fatal(err)
	}
	if len(tr.Expenses()) != 0 {
		t.Fatalf("expected empty ledger before restore")
	}

	if err := tr.LoadSnapshot(ctx, filename); err != nil {
		t.Fatal(err)
	}
	if got := tr.Expenses(); len(got) != 1 || got[0].Title != "Groceries" {
		t.Fatalf("snapshot restore failed: %v", got)
	}

	// The restored state is re-persisted to the autosave store.
	restored := newTestTracker(t, store)
	restored.Load(ctx)
	if got := restored.Expenses(); len(got) != 1 {
		t.Fatalf("restored state was not autosaved: %v", got)
	}

	if err := tr.DeleteSnapshot(ctx, filename); err != nil {
		t.Fatal(err)
	}
	if err := tr.LoadSnapshot(ctx, filename); !errors.Is(err, snapshot.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestLoadSnapshotMissingLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t, kvstore.NewMemory())

	if err := tr.AddExpense(ctx, core.NewExpense("Keep", core.MoneyFromInt(1), testDate)); err != nil {
		t.Fatal(err)
	}
	if err := tr.LoadSnapshot(ctx, "missing.json"); !errors.Is(err, snapshot.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := tr.Expenses(); len(got) != 1 {
		t.Fatalf("failed load must not change state: %v", got)
	}
}
