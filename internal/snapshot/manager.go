// Package snapshot manages named full-state exports: one JSON file per
// save, stored in a directory, retrievable independently of the live
// autosave.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"stack/internal/core"
)

// ErrNotFound is returned when the named snapshot file does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a full export of the ledger's three collections plus
// metadata. Unknown fields in stored files are tolerated on decode.
type Snapshot struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	CreatedAt         time.Time               `json:"createdAt"`
	Expenses          []core.Expense          `json:"expenses"`
	Paychecks         []core.Paycheck         `json:"paychecks"`
	RecurringExpenses []core.RecurringExpense `json:"recurringExpenses"`
}

// FileInfo describes a stored snapshot for listing.
type FileInfo struct {
	Filename  string    `json:"filename"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	SizeBytes int64     `json:"sizeBytes"`
}

// Manager reads and writes snapshot files under a single directory. The
// filename doubles as the snapshot identifier.
type Manager struct {
	dir string
}

func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshots directory: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Save writes the snapshot to a new file and returns its filename. A zero
// ID or CreatedAt is filled in. The filename combines the sanitized
// user-supplied name with a timestamp suffix, so the caller never has to
// manage name collisions.
func (m *Manager) Save(name string, s Snapshot) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	s.Name = name

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	filename := filenameFor(name, s.CreatedAt)
	if err := os.WriteFile(filepath.Join(m.dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return filename, nil
}

// List enumerates stored snapshots, newest first. A file that fails to
// decode still appears, described from its filename and file metadata, so
// a corrupted save remains visible and deletable.
func (m *Manager) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshots directory: %w", err)
	}

	var out []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		var s Snapshot
		data, err := os.ReadFile(filepath.Join(m.dir, entry.Name()))
		if err == nil && json.Unmarshal(data, &s) == nil && s.Name != "" {
			out = append(out, FileInfo{
				Filename:  entry.Name(),
				Name:      s.Name,
				CreatedAt: s.CreatedAt,
				SizeBytes: info.Size(),
			})
			continue
		}
		out = append(out, FileInfo{
			Filename:  entry.Name(),
			Name:      strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			CreatedAt: info.ModTime(),
			SizeBytes: info.Size(),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Load reads and decodes the named snapshot file.
func (m *Manager) Load(filename string) (Snapshot, error) {
	data, err := os.ReadFile(m.pathFor(filename))
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

// Delete removes the named snapshot file.
func (m *Manager) Delete(filename string) error {
	err := os.Remove(m.pathFor(filename))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// pathFor confines filenames to the snapshots directory.
func (m *Manager) pathFor(filename string) string {
	return filepath.Join(m.dir, filepath.Base(filename))
}

// filenameFor derives a filesystem-safe identifier from the user-supplied
// name plus a timestamp suffix.
func filenameFor(name string, createdAt time.Time) string {
	safe := strings.TrimSpace(name)
	safe = strings.ReplaceAll(safe, "/", "-")
	safe = strings.ReplaceAll(safe, "\\", "-")
	safe = strings.ReplaceAll(safe, " ", "_")
	return safe + "__" + createdAt.UTC().Format(time.RFC3339) + ".json"
}
