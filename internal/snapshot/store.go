package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"orwatch/internal/model"
)

// Store reads and writes the snapshot file: a pretty-printed JSON
// array of records, replaced wholesale on every save.
type Store struct {
	Path string
}

// Load returns the previously persisted records. A missing or
// whitespace-only file means no previous snapshot and is not an error.
func (s *Store) Load() ([]model.Record, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Record{}, nil
		}
		return nil, fmt.Errorf("reading snapshot %s: %w", s.Path, err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return []model.Record{}, nil
	}

	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", s.Path, err)
	}
	return records, nil
}

// Save replaces the snapshot with records. The document is written to
// a temp file in the same directory and renamed into place, so a crash
// mid-write never leaves a truncated snapshot behind.
func (s *Store) Save(records []model.Record) error {
	if records == nil {
		records = []model.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp snapshot: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("setting snapshot permissions: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("replacing snapshot %s: %w", s.Path, err)
	}
	return nil
}
