package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type dataEnvelope struct {
	Data    any    `json:"data"`
	Warning string `json:"warning,omitempty"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataEnvelope{Data: data})
}

func writeDataWarning(w http.ResponseWriter, status int, data any, warning string) {
	writeJSON(w, status, dataEnvelope{Data: data, Warning: warning})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorEnvelope{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// parseDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates; bare
// dates resolve to local midnight, matching day-granularity semantics.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// dateParam reads a date query parameter, defaulting to now when absent.
func dateParam(r *http.Request, name string) (time.Time, bool, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return time.Now(), true, nil
	}
	t, err := parseDate(v)
	return t, false, err
}

func intParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(name)))
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
