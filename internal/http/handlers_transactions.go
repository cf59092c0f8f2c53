package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"stack/internal/core"
	"stack/internal/ledger"
	"stack/internal/services"
)

type expenseRequest struct {
	Title  string     `json:"title"`
	Amount core.Money `json:"amount"`
	Date   string     `json:"date"`
}

type paycheckRequest struct {
	Amount core.Money `json:"amount"`
	Date   string     `json:"date"`
}

type recurringRequest struct {
	Title          string     `json:"title"`
	Amount         core.Money `json:"amount"`
	StartDate      string     `json:"startDate"`
	RecurrenceType string     `json:"recurrenceType"`
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeData(w, http.StatusOK, s.tracker.Expenses())
	case http.MethodPost:
		var req expenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		date, err := parseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid date")
			return
		}
		e := core.NewExpense(sanitizeInput(req.Title), req.Amount, date)
		s.recordMutation(w, r, e.ID, s.tracker.AddExpense(r.Context(), e))
	case http.MethodDelete:
		s.removeAt(w, r, s.tracker.RemoveExpense)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

func (s *Server) handlePaychecks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeData(w, http.StatusOK, s.tracker.Paychecks())
	case http.MethodPost:
		var req paycheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		date, err := parseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid date")
			return
		}
		p := core.NewPaycheck(req.Amount, date)
		s.recordMutation(w, r, p.ID, s.tracker.AddPaycheck(r.Context(), p))
	case http.MethodDelete:
		s.removeAt(w, r, s.tracker.RemovePaycheck)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

func (s *Server) handleRecurring(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeData(w, http.StatusOK, s.tracker.Recurring())
	case http.MethodPost:
		var req recurringRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		start, err := parseDate(req.StartDate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid start date")
			return
		}
		re := core.NewRecurringExpense(sanitizeInput(req.Title), req.Amount, start, core.RecurrenceType(req.RecurrenceType))
		s.recordMutation(w, r, re.ID, s.tracker.AddRecurring(r.Context(), re))
	case http.MethodDelete:
		s.removeAt(w, r, s.tracker.RemoveRecurring)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

type createdResponse struct {
	ID string `json:"id"`
}

// recordMutation turns an add result into a response. Validation failures
// are 422s; a persist failure means the in-memory mutation stands, so the
// entity is still reported created, with a warning.
func (s *Server) recordMutation(w http.ResponseWriter, r *http.Request, id string, err error) {
	switch {
	case err == nil:
		writeData(w, http.StatusCreated, createdResponse{ID: id})
	case errors.Is(err, services.ErrPersistFailed):
		slog.WarnContext(r.Context(), "Mutation recorded but autosave failed", "error", err)
		writeDataWarning(w, http.StatusCreated, createdResponse{ID: id}, "saved in memory only: autosave failed")
	default:
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	}
}

// removeAt handles index-based deletion against the currently displayed
// order shared by the GET listings.
func (s *Server) removeAt(w http.ResponseWriter, r *http.Request, remove func(ctx context.Context, index int) error) {
	index, err := intParam(r, "index")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index")
		return
	}
	err = remove(r.Context(), index)
	switch {
	case err == nil:
		writeData(w, http.StatusOK, map[string]int{"removed": index})
	case errors.Is(err, ledger.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, "index out of range")
	case errors.Is(err, services.ErrPersistFailed):
		slog.WarnContext(r.Context(), "Removal recorded but autosave failed", "error", err)
		writeDataWarning(w, http.StatusOK, map[string]int{"removed": index}, "saved in memory only: autosave failed")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
