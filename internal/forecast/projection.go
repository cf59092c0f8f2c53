package forecast

import (
	"time"

	"stack/internal/core"
)

// FallbackHorizonDays bounds the upcoming-expense window when no paycheck
// is scheduled within a year of the projection date.
const FallbackHorizonDays = 30

// HealthTier classifies a projected balance for display.
type HealthTier string

const (
	TierNegative HealthTier = "negative"
	TierLow      HealthTier = "low"
	TierHealthy  HealthTier = "healthy"
)

// DefaultThreshold separates low from healthy projected balances.
var DefaultThreshold = core.MoneyFromInt(1000)

// NextPaycheckAfter returns the earliest manual or virtual paycheck date
// strictly after date, searching up to one year ahead. The second return is
// false when no paycheck exists in that horizon.
func NextPaycheckAfter(v View, date time.Time) (time.Time, bool) {
	horizon := date.AddDate(1, 0, 0)

	var next time.Time
	found := false
	consider := func(d time.Time) {
		if !d.After(date) || d.After(horizon) {
			return
		}
		if !found || d.Before(next) {
			next = d
			found = true
		}
	}

	for _, p := range v.Paychecks {
		consider(p.Date)
	}
	for _, p := range ExpandPaychecks(v.Cadence, v.Paychecks, horizon) {
		consider(p.Date)
	}
	return next, found
}

// ExpensesBetween sums manual and virtual expenses whose timestamps fall in
// the half-open interval [startOfDay(start), startOfDay(end)).
func ExpensesBetween(v View, start, end time.Time) core.Money {
	startDay := StartOfDay(start)
	endDay := StartOfDay(end)

	sum := core.ZeroMoney
	inWindow := func(d time.Time) bool {
		return !d.Before(startDay) && d.Before(endDay)
	}

	for _, e := range v.Expenses {
		if inWindow(e.Date) {
			sum = sum.Add(e.Amount)
		}
	}
	for _, e := range ExpandExpenses(v.Recurring, v.Expenses, endDay) {
		if inWindow(e.Date) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// ProjectedBalance forecasts how much remains after paying everything due
// between the start of date's day and the next paycheck. When no paycheck
// is found within a year it falls back to a fixed 30-day window, a
// degenerate state for an unconfigured cadence.
func ProjectedBalance(v View, date time.Time) core.Money {
	dayStart := StartOfDay(date)
	base := Balance(v, dayStart)

	if next, ok := NextPaycheckAfter(v, dayStart); ok {
		return base.Sub(ExpensesBetween(v, dayStart, next))
	}
	fallbackEnd := dayStart.AddDate(0, 0, FallbackHorizonDays)
	return base.Sub(ExpensesBetween(v, dayStart, fallbackEnd))
}

// ClassifyBalance maps a projected balance onto a health tier: negative
// below zero, low below the threshold, healthy otherwise.
func ClassifyBalance(balance, threshold core.Money) HealthTier {
	switch {
	case balance.IsNegative():
		return TierNegative
	case balance.LessThan(threshold):
		return TierLow
	default:
		return TierHealthy
	}
}
