// Package storage persists the client state to the local filesystem, the
// process counterpart of browser-local storage.
package storage

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"afisha/internal/domain/service"

	"github.com/pkg/errors"
)

type fileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a StateStorage backed by a single JSON document at
// path. The file is rewritten atomically so a crash never leaves a torn
// state behind.
func NewFileStore(path string, logger *slog.Logger) service.StateStorage {
	return &fileStore{path: path, logger: logger}
}

// Load reads the persisted state. A missing file maps to ErrStateNotFound;
// an unreadable document is treated the same way, because persisted client
// state is untrusted input and starting clean beats failing startup.
func (s *fileStore) Load() (*service.ClientState, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, service.ErrStateNotFound
		}

		return nil, errors.Wrap(err, "read client state")
	}

	var state service.ClientState
	if err := json.Unmarshal(raw, &state); err != nil {
		s.logger.Warn("Discarding unreadable client state", slog.String("path", s.path), slog.Any("error", err))

		return nil, service.ErrStateNotFound
	}

	return &state, nil
}

// Save atomically replaces the persisted state.
func (s *fileStore) Save(state *service.ClientState) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode client state")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "create state directory")
	}

	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return errors.Wrap(err, "create temp state file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrap(err, "write temp state file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(err, "close temp state file")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(err, "replace state file")
	}

	return nil
}
