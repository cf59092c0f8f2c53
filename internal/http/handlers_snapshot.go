package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"stack/internal/services"
	"stack/internal/snapshot"
)

type snapshotSaveRequest struct {
	Name string `json:"name"`
}

type snapshotLoadRequest struct {
	Filename string `json:"filename"`
}

type snapshotSavedResponse struct {
	Filename string `json:"filename"`
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		infos, err := s.tracker.ListSnapshots()
		if err != nil {
			slog.ErrorContext(r.Context(), "Snapshot list failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not list snapshots")
			return
		}
		if infos == nil {
			infos = []snapshot.FileInfo{}
		}
		writeData(w, http.StatusOK, infos)
	case http.MethodPost:
		var req snapshotSaveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		name := sanitizeInput(req.Name)
		if name == "" {
			writeError(w, http.StatusUnprocessableEntity, "snapshot name required")
			return
		}
		filename, err := s.tracker.SaveSnapshot(r.Context(), name)
		if err != nil {
			slog.ErrorContext(r.Context(), "Snapshot save failed", "name", name, "error", err)
			writeError(w, http.StatusInternalServerError, "could not save snapshot")
			return
		}
		writeData(w, http.StatusCreated, snapshotSavedResponse{Filename: filename})
	case http.MethodDelete:
		filename := strings.TrimSpace(r.URL.Query().Get("file"))
		if filename == "" {
			writeError(w, http.StatusBadRequest, "file parameter required")
			return
		}
		err := s.tracker.DeleteSnapshot(r.Context(), filename)
		switch {
		case err == nil:
			writeData(w, http.StatusOK, map[string]string{"deleted": filename})
		case errors.Is(err, snapshot.ErrNotFound):
			writeError(w, http.StatusNotFound, "snapshot not found")
		default:
			slog.ErrorContext(r.Context(), "Snapshot delete failed", "file", filename, "error", err)
			writeError(w, http.StatusInternalServerError, "could not delete snapshot")
		}
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

// handleSnapshotLoad replaces the ledger's collections with a stored
// snapshot. On failure the ledger is left unchanged.
func (s *Server) handleSnapshotLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req snapshotLoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Filename) == "" {
		writeError(w, http.StatusUnprocessableEntity, "filename required")
		return
	}

	err := s.tracker.LoadSnapshot(r.Context(), req.Filename)
	switch {
	case err == nil:
		writeData(w, http.StatusOK, map[string]string{"loaded": req.Filename})
	case errors.Is(err, snapshot.ErrNotFound):
		writeError(w, http.StatusNotFound, "snapshot not found")
	case errors.Is(err, services.ErrPersistFailed):
		slog.WarnContext(r.Context(), "Snapshot restored but autosave failed", "error", err)
		writeDataWarning(w, http.StatusOK, map[string]string{"loaded": req.Filename}, "restored in memory only: autosave failed")
	default:
		slog.ErrorContext(r.Context(), "Snapshot load failed", "file", req.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load snapshot")
	}
}
