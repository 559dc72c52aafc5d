// Package storage persists the mapping between articles and their comment issues.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	domainErrors "github.com/thomas-vilte/gh-comments/internal/errors"
	"github.com/thomas-vilte/gh-comments/internal/logger"
	"github.com/thomas-vilte/gh-comments/internal/models"
)

// Store loads and saves the whole mapping at once.
type Store interface {
	Load(ctx context.Context) (models.Mapping, error)
	Save(ctx context.Context, mapping models.Mapping) error
}

var _ Store = (*FileStore)(nil)

// FileStore keeps the mapping in a JSON file. The file does not need to
// exist; it is created on the first save.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load returns an empty mapping when the file is missing.
func (s *FileStore) Load(ctx context.Context) (models.Mapping, error) {
	log := logger.FromContext(ctx)

	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("no issue mapping yet, starting empty", "path", s.path)
			return models.Mapping{}, nil
		}
		return nil, domainErrors.ErrStorageRead.
			WithContext("path", s.path).
			WithError(err)
	}

	var mapping models.Mapping
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&mapping); err != nil {
		return nil, domainErrors.ErrDecode.
			WithContext("path", s.path).
			WithError(err)
	}
	if dec.More() {
		return nil, domainErrors.ErrDecode.
			WithContext("path", s.path).
			WithError(errors.New("unexpected data after the mapping object"))
	}
	// a literal null decodes without error
	if mapping == nil {
		mapping = models.Mapping{}
	}

	log.Debug("issue mapping loaded", "path", s.path, "count", len(mapping))
	return mapping, nil
}

// Save writes the mapping to a temp file next to the target and renames it
// into place, so readers never observe a half written mapping.
func (s *FileStore) Save(ctx context.Context, mapping models.Mapping) error {
	if mapping == nil {
		mapping = models.Mapping{}
	}

	content, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return domainErrors.ErrStorageWrite.
			WithContext("path", s.path).
			WithError(err)
	}
	content = append(content, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domainErrors.ErrStorageWrite.
				WithContext("path", s.path).
				WithError(err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return domainErrors.ErrStorageWrite.
			WithContext("path", s.path).
			WithError(err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return domainErrors.ErrStorageWrite.
			WithContext("path", s.path).
			WithError(err)
	}

	logger.Debug(ctx, "issue mapping saved", "path", s.path, "count", len(mapping))
	return nil
}
