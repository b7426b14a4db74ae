package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrCorrupt indicates the on-disk document exists but cannot be decoded.
// Callers are expected to fall back to Default() and keep the cycle alive.
var ErrCorrupt = errors.New("state document is corrupt")

// FileStore persists the MonitorState document as a single JSON file.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore returns a store writing to path. The parent directory is
// created on the first Save, not here, so a read-only probe never mutates
// the filesystem.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the location of the state document.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the current document. A missing file is a first run and yields
// the default state without error. An unreadable or undecodable file yields
// the default state plus ErrCorrupt.
func (s *FileStore) Load() (MonitorState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("No state document found, starting fresh", zap.String("path", s.path))
			return Default(), nil
		}
		return Default(), fmt.Errorf("%w: read %s: %s", ErrCorrupt, s.path, err)
	}

	var st MonitorState
	if err := json.Unmarshal(data, &st); err != nil {
		return Default(), fmt.Errorf("%w: decode %s: %s", ErrCorrupt, s.path, err)
	}
	return st, nil
}

// Save writes the document atomically: the payload goes to a temporary file
// in the same directory, which is then renamed over the target. A crash
// mid-write leaves the previous document intact.
func (s *FileStore) Save(st MonitorState) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create state dir %s: %w", dir, err)
	}

	payload, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	payload = append(payload, '\n')

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp state file %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp state file %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state file %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmpName, s.path, err)
	}
	return nil
}
