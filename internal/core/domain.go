package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Weekly   RecurrenceType = "weekly"
	Biweekly RecurrenceType = "biweekly"
	Monthly  RecurrenceType = "monthly"
)

type (
	// RecurrenceType is the step rule governing a recurring expense's
	// expansion into virtual occurrences.
	RecurrenceType string

	// Expense is a manually entered outgoing transaction. Virtual
	// occurrences produced by the forecast package share this shape but
	// carry an empty ID and are never persisted.
	Expense struct {
		ID     string    `json:"id"`
		Title  string    `json:"title"`
		Amount Money     `json:"amount"`
		Date   time.Time `json:"date"`
	}

	// Paycheck is a manually entered incoming transaction.
	Paycheck struct {
		ID     string    `json:"id"`
		Amount Money     `json:"amount"`
		Date   time.Time `json:"date"`
	}

	// RecurringExpense defines an infinite forward series of expense
	// occurrences starting at StartDate, stepping by RecurrenceType.
	// Deleting a definition does not remove already-materialized manual
	// expenses.
	RecurringExpense struct {
		ID             string         `json:"id"`
		Title          string         `json:"title"`
		Amount         Money          `json:"amount"`
		StartDate      time.Time      `json:"startDate"`
		RecurrenceType RecurrenceType `json:"recurrenceType"`
	}
)

var (
	ErrEmptyTitle        = errors.New("empty title")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrZeroDate          = errors.New("date cannot be zero")
	ErrInvalidRecurrence = errors.New("invalid recurrence type")
)

// NewExpense creates a manual expense with a fresh UUID.
func NewExpense(title string, amount Money, date time.Time) Expense {
	return Expense{ID: uuid.NewString(), Title: title, Amount: amount, Date: date}
}

// NewPaycheck creates a manual paycheck with a fresh UUID.
func NewPaycheck(amount Money, date time.Time) Paycheck {
	return Paycheck{ID: uuid.NewString(), Amount: amount, Date: date}
}

// NewRecurringExpense creates a recurring expense definition with a fresh UUID.
func NewRecurringExpense(title string, amount Money, startDate time.Time, rt RecurrenceType) RecurringExpense {
	return RecurringExpense{ID: uuid.NewString(), Title: title, Amount: amount, StartDate: startDate, RecurrenceType: rt}
}

func (rt RecurrenceType) Validate() error {
	switch rt {
	case Weekly, Biweekly, Monthly:
		return nil
	default:
		return ErrInvalidRecurrence
	}
}

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(e.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	return e.Amount.Validate()
}

func (p Paycheck) Validate() error {
	if p.Date.IsZero() {
		return ErrZeroDate
	}
	return p.Amount.Validate()
}

func (re RecurringExpense) Validate() error {
	if len(strings.TrimSpace(re.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(re.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if re.StartDate.IsZero() {
		return errors.New("invalid start date: " + ErrZeroDate.Error())
	}
	if err := re.RecurrenceType.Validate(); err != nil {
		return err
	}
	return re.Amount.Validate()
}
