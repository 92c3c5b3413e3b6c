package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactStore persists rendered bytes and returns a locator for the stored
// artifact. The locator is recorded on the audit record as FilePath and is
// only meaningful while the artifact exists on the original medium.
type ArtifactStore interface {
	Put(ctx context.Context, reference string, content []byte) (string, error)
	Get(ctx context.Context, filePath string) ([]byte, error)
	// Delete removes a stored artifact. Removing an absent artifact is not an
	// error, so discard paths stay idempotent.
	Delete(ctx context.Context, filePath string) error
}

// FSArtifactStore writes artifacts under a base directory, one file per
// reference number.
type FSArtifactStore struct {
	baseDir string
}

func NewFSArtifactStore(baseDir string) *FSArtifactStore {
	return &FSArtifactStore{baseDir: baseDir}
}

func (s *FSArtifactStore) Put(_ context.Context, reference string, content []byte) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	// Reference numbers are dash-delimited ASCII; sanitize anyway since the
	// value came over the wire on re-render paths.
	name := strings.ReplaceAll(reference, string(filepath.Separator), "_") + ".txt"
	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}

func (s *FSArtifactStore) Get(_ context.Context, filePath string) ([]byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return content, nil
}

func (s *FSArtifactStore) Delete(_ context.Context, filePath string) error {
	if err := os.Remove(filePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove artifact: %w", err)
	}
	return nil
}
