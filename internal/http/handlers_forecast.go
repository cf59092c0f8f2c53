package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"stack/internal/core"
	"stack/internal/forecast"
)

type balanceResponse struct {
	Date    time.Time  `json:"date"`
	Balance core.Money `json:"balance"`
}

type projectionResponse struct {
	Date      time.Time           `json:"date"`
	Balance   core.Money          `json:"balance"`
	Projected core.Money          `json:"projected"`
	Tier      forecast.HealthTier `json:"tier"`
}

// CalendarDay is one cell of the month view.
type CalendarDay struct {
	Day       int                 `json:"day"`
	Date      string              `json:"date"`
	Projected core.Money          `json:"projected"`
	Tier      forecast.HealthTier `json:"tier"`
}

// CalendarMonth is the data behind one rendered calendar grid.
type CalendarMonth struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []CalendarDay `json:"days"`
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	date, _, err := dateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	writeData(w, http.StatusOK, balanceResponse{Date: date, Balance: s.tracker.Balance(date)})
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	date, _, err := dateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	projected, tier := s.tracker.Projection(date)
	writeData(w, http.StatusOK, projectionResponse{
		Date:      date,
		Balance:   s.tracker.Balance(forecast.StartOfDay(date)),
		Projected: projected,
		Tier:      tier,
	})
}

// handleCalendar returns the projected balance and health tier for every
// day of the requested month.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	now := time.Now()
	year := now.Year()
	month := int(now.Month())
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := intParam(r, "year")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = y
	}
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := intParam(r, "month")
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = m
	}

	key := fmt.Sprintf("%d-%d", year, month)
	if cached, found := s.calendarCache.Get(key); found {
		slog.DebugContext(r.Context(), "Calendar cache hit", "year", year, "month", month)
		writeData(w, http.StatusOK, cached)
		return
	}

	cm := s.buildCalendarMonth(year, time.Month(month))
	s.calendarCache.Set(key, cm)
	writeData(w, http.StatusOK, cm)
}

func (s *Server) buildCalendarMonth(year int, month time.Month) CalendarMonth {
	cm := CalendarMonth{Year: year, Month: int(month)}
	days := forecast.DaysInMonth(year, month)
	view := s.tracker.View()
	threshold := s.tracker.Threshold()

	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		projected := forecast.ProjectedBalance(view, date)
		cm.Days = append(cm.Days, CalendarDay{
			Day:       day,
			Date:      date.Format("2006-01-02"),
			Projected: projected,
			Tier:      forecast.ClassifyBalance(projected, threshold),
		})
	}
	return cm
}
