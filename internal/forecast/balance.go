package forecast

import (
	"time"

	"stack/internal/core"
)

// View is an immutable read snapshot of ledger state plus the configured
// paycheck cadence. Queries never mutate it, so a View built once can serve
// a whole calendar render.
type View struct {
	Expenses  []core.Expense
	Paychecks []core.Paycheck
	Recurring []core.RecurringExpense
	Cadence   Cadence
}

// Balance computes the account balance as of an instant: manual plus
// virtual paychecks dated at or before asOf, minus manual plus virtual
// expenses dated at or before asOf. Filters are inclusive on the full
// timestamp, not the calendar day.
func Balance(v View, asOf time.Time) core.Money {
	balance := core.ZeroMoney

	for _, p := range v.Paychecks {
		if !p.Date.After(asOf) {
			balance = balance.Add(p.Amount)
		}
	}
	for _, p := range ExpandPaychecks(v.Cadence, v.Paychecks, asOf) {
		balance = balance.Add(p.Amount)
	}

	for _, e := range v.Expenses {
		if !e.Date.After(asOf) {
			balance = balance.Sub(e.Amount)
		}
	}
	for _, e := range ExpandExpenses(v.Recurring, v.Expenses, asOf) {
		balance = balance.Sub(e.Amount)
	}

	return balance
}
