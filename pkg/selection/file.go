package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dtnitsch/sachai/models"
	"github.com/dtnitsch/sachai/pkg/storage"
)

// FileStore keeps the pending selection in a single JSON file, so separate
// CLI invocations can hand a selection to each other.
type FileStore struct {
	path string
	fs   *storage.Storage
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, models.ErrMissingSlotPath
	}
	return &FileStore{path: path, fs: &storage.Storage{}}, nil
}

// Put writes text as the pending selection.
func (s *FileStore) Put(_ context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptySelection
	}
	data, err := json.Marshal(models.SelectionPayload{SelectedText: text})
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}
	return s.fs.SaveFile(s.path, data)
}

// Pending reports whether the selection file exists.
func (s *FileStore) Pending(_ context.Context) (bool, error) {
	return s.fs.HasFile(s.path), nil
}

// Take reads and removes the pending selection.
func (s *FileStore) Take(_ context.Context) (string, bool, error) {
	data, ok, err := s.fs.ClaimFile(s.path)
	if err != nil || !ok {
		return "", false, err
	}

	var payload models.SelectionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", false, fmt.Errorf("failed to decode selection: %w", err)
	}
	return payload.SelectedText, payload.SelectedText != "", nil
}
