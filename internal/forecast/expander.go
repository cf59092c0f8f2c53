// Package forecast implements the balance and recurrence engine: expansion
// of recurring definitions into dated virtual occurrences, point-in-time
// balance calculation, and forward projection of cash-flow health.
//
// Everything here is a pure function of a View and a date; nothing is
// persisted and virtual occurrences are recomputed on every query.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"stack/internal/core"
)

// DefaultPaycheckInterval is the assumed gap between automatic paychecks.
const DefaultPaycheckInterval = 14 * 24 * time.Hour

// ErrInvalidCadence rejects non-positive paycheck intervals before any
// expansion runs; a zero or negative interval would never terminate.
var ErrInvalidCadence = errors.New("cadence interval must be positive")

// Cadence is the fixed schedule paychecks are assumed to follow. A nil
// start disables automatic paycheck generation entirely.
type Cadence struct {
	start    *time.Time
	interval time.Duration
}

// NewCadence validates and builds a paycheck cadence. The interval must be
// strictly positive; this is the only place InvalidCadence is checked, so
// expansion itself never has to guard against non-termination.
func NewCadence(start *time.Time, interval time.Duration) (Cadence, error) {
	if interval <= 0 {
		return Cadence{}, ErrInvalidCadence
	}
	var s *time.Time
	if start != nil {
		cp := *start
		s = &cp
	}
	return Cadence{start: s, interval: interval}, nil
}

// StepStrategy advances a recurring expense occurrence to its next date.
// Each recurrence type encapsulates its own stepping rule.
type StepStrategy interface {
	Next(t time.Time) time.Time
}

// WeeklyStep advances by seven days.
type WeeklyStep struct{}

func (WeeklyStep) Next(t time.Time) time.Time { return t.AddDate(0, 0, 7) }

// BiweeklyStep advances by fourteen days.
type BiweeklyStep struct{}

func (BiweeklyStep) Next(t time.Time) time.Time { return t.AddDate(0, 0, 14) }

// MonthlyStep advances by one calendar month, clamping to the last valid
// day of shorter months.
type MonthlyStep struct{}

func (MonthlyStep) Next(t time.Time) time.Time { return addMonthClamped(t) }

// stepStrategies maps recurrence types to their stepping rules.
var stepStrategies = map[core.RecurrenceType]StepStrategy{
	core.Weekly:   WeeklyStep{},
	core.Biweekly: BiweeklyStep{},
	core.Monthly:  MonthlyStep{},
}

// GetStepStrategy returns the stepping rule for a recurrence type.
func GetStepStrategy(rt core.RecurrenceType) (StepStrategy, error) {
	s, ok := stepStrategies[rt]
	if !ok {
		return nil, fmt.Errorf("unknown recurrence type: %s", rt)
	}
	return s, nil
}

// RegisterStepStrategy registers a stepping rule for a new recurrence type.
func RegisterStepStrategy(rt core.RecurrenceType, s StepStrategy) {
	stepStrategies[rt] = s
}

// ExpandPaychecks generates virtual paychecks on the cadence up to and
// including upTo. A step date already covered by a manual paycheck on the
// same calendar day is suppressed. Every virtual paycheck uses the amount
// of the first manual paycheck in the list, or zero when none exists; this
// mirrors the historical behavior even when later paychecks differ.
func ExpandPaychecks(c Cadence, manual []core.Paycheck, upTo time.Time) []core.Paycheck {
	if c.start == nil {
		return nil
	}

	amount := core.ZeroMoney
	if len(manual) > 0 {
		amount = manual[0].Amount
	}

	var out []core.Paycheck
	for next := *c.start; !next.After(upTo); next = next.Add(c.interval) {
		if hasPaycheckOn(manual, next) {
			continue
		}
		out = append(out, core.Paycheck{Amount: amount, Date: next})
	}
	return out
}

// ExpandExpenses generates virtual expenses for every definition up to and
// including upTo. An occurrence is suppressed when a manual expense exists
// on the same calendar day with the same title; amounts play no part in
// de-duplication. Results are concatenated per definition, unsorted.
// Definitions with an unknown recurrence type are skipped.
func ExpandExpenses(defs []core.RecurringExpense, manual []core.Expense, upTo time.Time) []core.Expense {
	var out []core.Expense
	for _, def := range defs {
		step, err := GetStepStrategy(def.RecurrenceType)
		if err != nil {
			continue
		}
		for next := def.StartDate; !next.After(upTo); next = step.Next(next) {
			if hasExpenseOn(manual, next, def.Title) {
				continue
			}
			out = append(out, core.Expense{Title: def.Title, Amount: def.Amount, Date: next})
		}
	}
	return out
}

func hasPaycheckOn(manual []core.Paycheck, day time.Time) bool {
	for _, p := range manual {
		if SameDay(p.Date, day) {
			return true
		}
	}
	return false
}

func hasExpenseOn(manual []core.Expense, day time.Time, title string) bool {
	for _, e := range manual {
		if e.Title == title && SameDay(e.Date, day) {
			return true
		}
	}
	return false
}
