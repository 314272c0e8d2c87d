package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aiready/aiready/internal/domain"
)

// RelPath is where scan history lives inside a project.
var RelPath = filepath.Join(".aiready", "history", "scores.json")

// MaxEntries is the default history length; older entries are dropped first.
const MaxEntries = 200

// FileHistory implements domain.ReportHistory on a JSON file per project.
type FileHistory struct {
	limit int
}

func New() *FileHistory {
	return &FileHistory{limit: MaxEntries}
}

// WithLimit keeps at most n entries. n <= 0 means no limit.
func WithLimit(n int) *FileHistory {
	return &FileHistory{limit: n}
}

// Save appends entry. Rescanning an unchanged commit replaces the previous
// entry for that commit instead of growing the log.
func (h *FileHistory) Save(projectPath string, entry domain.HistoryEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	if n := len(entries); n > 0 && entry.CommitHash != "" && entries[n-1].CommitHash == entry.CommitHash {
		entries[n-1] = entry
	} else {
		entries = append(entries, entry)
	}
	if h.limit > 0 && len(entries) > h.limit {
		entries = entries[len(entries)-h.limit:]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return writeAtomic(filepath.Join(projectPath, RelPath), data)
}

// Load returns entries oldest first. A missing file is an empty history.
func (h *FileHistory) Load(projectPath string) ([]domain.HistoryEntry, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, RelPath))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.ToSlash(RelPath), err)
	}
	return entries, nil
}

// writeAtomic replaces path through a sibling temp file so readers never
// see a partial write.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".scores-*.json")
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing history: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
