package ledger

import (
	"errors"
	"testing"
	"time"

	"stack/internal/core"
)

var testDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAddAndView(t *testing.T) {
	l := New()
	l.AddExpense(core.Expense{ID: "e1", Title: "Coffee", Amount: core.MoneyFromInt(4), Date: testDate})
	l.AddPaycheck(core.Paycheck{ID: "p1", Amount: core.MoneyFromInt(1000), Date: testDate})
	l.AddRecurring(core.RecurringExpense{ID: "r1", Title: "Rent", Amount: core.MoneyFromInt(1200), StartDate: testDate, RecurrenceType: core.Monthly})

	snap := l.View()
	if len(snap.Expenses) != 1 || len(snap.Paychecks) != 1 || len(snap.Recurring) != 1 {
		t.Fatalf("unexpected collection sizes: %d %d %d", len(snap.Expenses), len(snap.Paychecks), len(snap.Recurring))
	}
}

func TestViewIsACopy(t *testing.T) {
	l := New()
	l.AddExpense(core.Expense{ID: "e1", Title: "Coffee", Amount: core.MoneyFromInt(4), Date: testDate})

	snap := l.View()
	snap.Expenses[0].Title = "Mutated"

	if got := l.View().Expenses[0].Title; got != "Coffee" {
		t.Fatalf("ledger state mutated through a view copy: %q", got)
	}
}

func TestRemoveByIndex(t *testing.T) {
	l := New()
	l.AddExpense(core.Expense{ID: "e1", Title: "First", Amount: core.MoneyFromInt(1), Date: testDate})
	l.AddExpense(core.Expense{ID: "e2", Title: "Second", Amount: core.MoneyFromInt(2), Date: testDate})
	l.AddExpense(core.Expense{ID: "e3", Title: "Third", Amount: core.MoneyFromInt(3), Date: testDate})

	if err := l.RemoveExpense(1); err != nil {
		t.Fatal(err)
	}
	snap := l.View()
	if len(snap.Expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(snap.Expenses))
	}
	if snap.Expenses[0].ID != "e1" || snap.Expenses[1].ID != "e3" {
		t.Fatalf("wrong element removed: %v", snap.Expenses)
	}
}

func TestRemoveOutOfRange(t *testing.T) {
	l := New()
	l.AddPaycheck(core.Paycheck{ID: "p1", Amount: core.MoneyFromInt(1000), Date: testDate})

	for _, idx := range []int{-1, 1, 42} {
		if err := l.RemovePaycheck(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
	if err := l.RemoveRecurring(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("empty recurring: expected ErrIndexOutOfRange, got %v", err)
	}
	if len(l.View().Paychecks) != 1 {
		t.Fatalf("failed removal must not change state")
	}
}

func TestReplaceAll(t *testing.T) {
	l := New()
	l.AddExpense(core.Expense{ID: "old", Title: "Old", Amount: core.MoneyFromInt(1), Date: testDate})

	l.ReplaceAll(Snapshot{
		Paychecks: []core.Paycheck{{ID: "p1", Amount: core.MoneyFromInt(500), Date: testDate}},
	})

	snap := l.View()
	if len(snap.Expenses) != 0 {
		t.Fatalf("expenses should have been replaced away, got %v", snap.Expenses)
	}
	if len(snap.Paychecks) != 1 || snap.Paychecks[0].ID != "p1" {
		t.Fatalf("unexpected paychecks after replace: %v", snap.Paychecks)
	}
}

func TestSubscribeNotifiesAfterEveryMutation(t *testing.T) {
	l := New()
	var states []Snapshot
	l.Subscribe(func(s Snapshot) { states = append(states, s) })

	l.AddExpense(core.Expense{ID: "e1", Title: "A", Amount: core.MoneyFromInt(1), Date: testDate})
	l.AddExpense(core.Expense{ID: "e2", Title: "B", Amount: core.MoneyFromInt(2), Date: testDate})
	if err := l.RemoveExpense(0); err != nil {
		t.Fatal(err)
	}

	if len(states) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(states))
	}
	if len(states[1].Expenses) != 2 || len(states[2].Expenses) != 1 {
		t.Fatalf("notifications carry wrong state: %v", states)
	}
	if states[2].Expenses[0].ID != "e2" {
		t.Fatalf("final state wrong: %v", states[2].Expenses)
	}
}
