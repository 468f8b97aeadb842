package services

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/snapdoc/snapdoc/internal/core/domain"
	"github.com/snapdoc/snapdoc/internal/core/ports"
	"github.com/snapdoc/snapdoc/internal/logger"
	"github.com/snapdoc/snapdoc/pkg/library"
)

// CreateService turns a set of images into a stored PDF document
type CreateService struct {
	renderer ports.Renderer
	store    ports.DocumentStore
	library  *library.Library
}

// NewCreateService creates a new document creation service
func NewCreateService(renderer ports.Renderer, store ports.DocumentStore, lib *library.Library) *CreateService {
	return &CreateService{
		renderer: renderer,
		store:    store,
		library:  lib,
	}
}

// CreateRequest represents a request to create a document from images
type CreateRequest struct {
	Title      string   // Desired display name, may be empty
	ImagePaths []string // Pages, in order
}

// CreateResponse represents the response from creating a document
type CreateResponse struct {
	Document *domain.Document
	Renderer string
}

// Execute renders the images to a temporary file in the cache, then hands
// it to the store, which owns naming and final placement.
func (s *CreateService) Execute(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	if len(req.ImagePaths) == 0 {
		return nil, fmt.Errorf("no images provided")
	}

	// Validate input images before invoking the renderer
	for _, path := range req.ImagePaths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return nil, fmt.Errorf("image not found: %s", path)
		}
	}

	// Render into the cache, never directly into the library
	stagingPath := s.library.StagingPath("render-" + uuid.New().String() + domain.Extension)

	if err := s.renderer.Render(ctx, req.ImagePaths, stagingPath); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}

	doc, err := s.store.Commit(ctx, stagingPath, req.Title, len(req.ImagePaths))
	if err != nil {
		// The rendered file is ours to clean up when the store rejects it
		if rmErr := os.Remove(stagingPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warn("failed to remove staging file %s: %v", stagingPath, rmErr)
		}
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	return &CreateResponse{
		Document: doc,
		Renderer: s.renderer.Name(),
	}, nil
}
