// Package jsonfile persists small JSON documents under a data directory.
// Preferences and daily stats live here so restarts do not lose state
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"

	perr "focusguard/internal/platform/errors"
	"focusguard/internal/platform/logger"
)

// Store reads and writes named JSON documents under Dir
type Store struct {
	dir string
}

// Open ensures dir exists and returns a store rooted there
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, perr.InvalidArgf("data dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeStore, "create data dir %s", dir)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory path
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

// Load reads name into v. Returns found=false with nil error when the
// document does not exist yet, so first runs start from zero values
func (s *Store) Load(name string, v any) (bool, error) {
	raw, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, perr.Wrapf(err, perr.ErrorCodeStore, "read %s", name)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		// a corrupt document should not wedge the service forever
		logger.Named("jsonfile").Warn().Str("name", name).Err(err).Msg("corrupt document ignored")
		return false, perr.Wrapf(err, perr.ErrorCodeStore, "decode %s", name)
	}
	return true, nil
}

// Save writes v as indented JSON via a temp file and rename so a crash
// mid write never leaves a truncated document behind
func (s *Store) Save(name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStore, "encode %s", name)
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStore, "temp file for %s", name)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodeStore, "write %s", name)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodeStore, "close %s", name)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		_ = os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodeStore, "rename %s", name)
	}
	return nil
}
