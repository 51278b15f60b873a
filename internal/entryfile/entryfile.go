// Package entryfile reads and writes local collections of time entries.
// Files ending in .yaml or .yml use YAML; everything else is JSON in the
// same shape the HTTP API accepts.
package entryfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"worklog/internal/domain"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Read loads the entries stored at path. A missing file is an empty collection.
func Read(path string) ([]domain.TimeEntry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.TimeEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	entries := []domain.TimeEntry{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return entries, nil
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &entries)
	} else {
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

// Write replaces the file at path with entries, going through a temp file
// so readers never see a partial write.
func Write(path string, entries []domain.TimeEntry) error {
	if entries == nil {
		entries = []domain.TimeEntry{}
	}
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(entries)
	} else {
		data, err = json.MarshalIndent(entries, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Append adds entries to the collection at path.
func Append(path string, entries ...domain.TimeEntry) error {
	existing, err := Read(path)
	if err != nil {
		return err
	}
	return Write(path, append(existing, entries...))
}
