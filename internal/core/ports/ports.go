package ports

import (
	"context"

	"github.com/snapdoc/snapdoc/internal/core/domain"
)

// DocumentStore defines the port for the persistent document library.
// Implementations own a single flat managed directory and are the only
// writers inside it.
type DocumentStore interface {
	// Commit relocates a rendered PDF from sourcePath into the managed
	// directory under a sanitized, collision-free name derived from
	// displayName. imageCount feeds the synthesized default name when
	// displayName sanitizes away to nothing. The source file is consumed
	// on success (best-effort removal).
	Commit(ctx context.Context, sourcePath, displayName string, imageCount int) (*domain.Document, error)

	// List returns all stored documents, newest first (ties broken by
	// name). Entries that vanish mid-enumeration are skipped.
	List(ctx context.Context) ([]domain.Document, error)

	// Info returns a fresh metadata snapshot for one document
	Info(ctx context.Context, name string) (*domain.Document, error)

	// Delete removes a document. Returns false (and no error) when the
	// document was already gone.
	Delete(ctx context.Context, name string) (bool, error)

	// Rename gives an existing document a new sanitized, collision-free
	// name and returns the resulting snapshot.
	Rename(ctx context.Context, name, newDisplayName string) (*domain.Document, error)
}

// Renderer defines the port for external image-to-PDF rendering tools
type Renderer interface {
	// Render produces a single PDF at outputPath from the given image files
	Render(ctx context.Context, imagePaths []string, outputPath string) error

	// Name returns the tool name for diagnostics ("magick", "img2pdf")
	Name() string

	// IsAvailable checks whether the underlying tool is installed
	IsAvailable() bool
}

// Opener defines the port for handing documents to the operating system
type Opener interface {
	// Open opens a file with the configured or system-default application
	Open(ctx context.Context, path string) error

	// Reveal shows the file's containing directory in the file manager
	Reveal(ctx context.Context, path string) error
}
