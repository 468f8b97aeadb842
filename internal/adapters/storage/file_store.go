package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/snapdoc/snapdoc/internal/core/domain"
	"github.com/snapdoc/snapdoc/internal/core/ports"
	"github.com/snapdoc/snapdoc/internal/logger"
)

// maxCollisionRetries bounds the rename loop. Every attempt takes a fresh
// clock sample, so exhausting the budget means the clock is not advancing.
const maxCollisionRetries = 5

// FileStore is the filesystem-backed document store. It owns a single flat
// directory of PDF files and is the only component that writes inside it.
//
// Concurrency: operations are safe to call from multiple goroutines without
// locking. Name resolution is advisory (check then create); if two commits
// race to the same resolved name within one clock tick, the copy step is
// plain create and the last writer wins.
type FileStore struct {
	dir string
}

// NewFileStore creates a store over the given managed directory. The
// directory handle is explicit so tests can point the store at an isolated
// temporary directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Ensure it implements the interface
var _ ports.DocumentStore = (*FileStore)(nil)

// Dir returns the managed directory path
func (s *FileStore) Dir() string {
	return s.dir
}

// Commit relocates the file at sourcePath into the managed directory under
// a sanitized, collision-free name derived from displayName. The copy
// tolerates cross-volume sources; the original is removed afterwards on a
// best-effort basis. Once the destination is durably written, nothing about
// the source can fail the commit.
func (s *FileStore) Commit(ctx context.Context, sourcePath, displayName string, imageCount int) (*domain.Document, error) {
	if _, err := os.Stat(sourcePath); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, sourcePath)
	}

	name, usedFallback := domain.SanitizeName(displayName, imageCount)
	if usedFallback {
		logger.Info("display name %q was unusable, synthesized %q", displayName, name)
	}

	finalName, err := s.resolveName(name)
	if err != nil {
		return nil, err
	}
	destPath := filepath.Join(s.dir, finalName)

	src, err := os.Open(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, sourcePath)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrDestinationUnwritable, err)
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDestinationUnwritable, err)
	}

	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		s.discardPartial(destPath)
		return nil, fmt.Errorf("%w: %v", domain.ErrDestinationUnwritable, err)
	}
	if err := dest.Close(); err != nil {
		s.discardPartial(destPath)
		return nil, fmt.Errorf("%w: %v", domain.ErrDestinationUnwritable, err)
	}

	// The artifact is durable; a stray temporary source is not a failure
	if err := os.Remove(sourcePath); err != nil {
		logger.Warn("could not remove source file %s: %v", sourcePath, err)
	}

	info, err := os.Stat(destPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDestinationUnwritable, err)
	}

	return &domain.Document{
		Name:       finalName,
		Path:       destPath,
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
	}, nil
}

// List returns every PDF in the managed directory, newest first with ties
// broken by name. Entries whose metadata read fails (deleted between
// enumeration and stat) are skipped rather than failing the listing.
func (s *FileStore) List(ctx context.Context) ([]domain.Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read document directory: %w", err)
	}

	var docs []domain.Document
	for _, entry := range entries {
		if entry.IsDir() || !domain.HasExtension(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			logger.Debug("skipping %s: %v", entry.Name(), err)
			continue
		}

		docs = append(docs, domain.Document{
			Name:       entry.Name(),
			Path:       filepath.Join(s.dir, entry.Name()),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].ModifiedAt.Equal(docs[j].ModifiedAt) {
			return docs[i].Name < docs[j].Name
		}
		return docs[i].ModifiedAt.After(docs[j].ModifiedAt)
	})

	return docs, nil
}

// Info returns a fresh metadata snapshot for one document. The snapshot is
// re-read from disk on every call, never cached.
func (s *FileStore) Info(ctx context.Context, name string) (*domain.Document, error) {
	path, ok := s.documentPath(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read metadata for %s: %w", name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}

	return &domain.Document{
		Name:       name,
		Path:       path,
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
	}, nil
}

// Delete removes a document. Deleting a document that is already gone is
// not an error: the second return is false and the caller decides whether
// that matters.
func (s *FileStore) Delete(ctx context.Context, name string) (bool, error) {
	path, ok := s.documentPath(name)
	if !ok {
		return false, nil
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return true, nil
}

// Rename gives an existing document a new sanitized name, resolving
// collisions the same way commit does so no distinct document is ever
// overwritten.
func (s *FileStore) Rename(ctx context.Context, name, newDisplayName string) (*domain.Document, error) {
	oldPath, ok := s.documentPath(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}
	if _, err := os.Stat(oldPath); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}

	newName, usedFallback := domain.SanitizeName(newDisplayName, 0)
	if usedFallback {
		logger.Info("new name %q was unusable, synthesized %q", newDisplayName, newName)
	}
	if newName == name {
		return s.Info(ctx, name)
	}

	finalName, err := s.resolveName(newName)
	if err != nil {
		return nil, err
	}

	newPath := filepath.Join(s.dir, finalName)
	if err := os.Rename(oldPath, newPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to rename %s: %w", name, err)
	}

	return s.Info(ctx, finalName)
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// resolveName returns a name that does not exist in the managed directory
// at the moment of the check. On collision the current candidate loses its
// extension, gains an underscore and a nanosecond timestamp, and is tested
// again. The clock is re-sampled on every retry so two callers landing on
// the same tick diverge on the next attempt.
func (s *FileStore) resolveName(desired string) (string, error) {
	name := desired
	for attempt := 0; attempt < maxCollisionRetries; attempt++ {
		if _, err := os.Stat(filepath.Join(s.dir, name)); os.IsNotExist(err) {
			return name, nil
		}

		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		name = fmt.Sprintf("%s_%d%s", stem, time.Now().UnixNano(), ext)
	}
	return "", fmt.Errorf("%w: %s", domain.ErrCollisionUnresolved, desired)
}

// documentPath maps a document name to its location inside the managed
// directory. Names carrying path separators or relative elements do not
// identify stored documents.
func (s *FileStore) documentPath(name string) (string, bool) {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		return "", false
	}
	return filepath.Join(s.dir, name), true
}

// discardPartial removes a half-written destination file so a failed copy
// never leaves a partial artifact visible in the managed directory.
func (s *FileStore) discardPartial(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not remove partial file %s: %v", path, err)
	}
}
