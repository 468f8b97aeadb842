package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/snapdoc/snapdoc/internal/core/domain"
	"github.com/snapdoc/snapdoc/internal/core/ports"
	"github.com/snapdoc/snapdoc/internal/logger"
	"github.com/snapdoc/snapdoc/pkg/library"
)

// ImportService brings existing PDF files under library management
type ImportService struct {
	store   ports.DocumentStore
	library *library.Library
}

// NewImportService creates a new import service
func NewImportService(store ports.DocumentStore, lib *library.Library) *ImportService {
	return &ImportService{
		store:   store,
		library: lib,
	}
}

// ImportRequest represents a request to import a single file
type ImportRequest struct {
	SourcePath string
	Name       string // Optional display name, defaults to the source filename
	Move       bool   // Remove the original after import
}

// ImportResponse represents the response from importing a file
type ImportResponse struct {
	Document *domain.Document
}

// Execute imports one file. In copy mode the original is duplicated into
// the cache first, because the store consumes its source file.
func (s *ImportService) Execute(ctx context.Context, req ImportRequest) (*ImportResponse, error) {
	info, err := os.Stat(req.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, req.SourcePath)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrSourceNotFound, req.SourcePath)
	}

	displayName := strings.TrimSpace(req.Name)
	if displayName == "" {
		displayName = filepath.Base(req.SourcePath)
	}

	if !domain.HasExtension(filepath.Base(req.SourcePath)) {
		logger.Warn("importing non-pdf file: %s", req.SourcePath)
	}

	sourcePath := req.SourcePath
	if !req.Move {
		stagingPath := s.library.StagingPath("import-" + uuid.New().String() + domain.Extension)
		if err := copyFile(req.SourcePath, stagingPath); err != nil {
			return nil, fmt.Errorf("failed to stage import: %w", err)
		}
		sourcePath = stagingPath
	}

	doc, err := s.store.Commit(ctx, sourcePath, displayName, 0)
	if err != nil {
		if sourcePath != req.SourcePath {
			if rmErr := os.Remove(sourcePath); rmErr != nil && !os.IsNotExist(rmErr) {
				logger.Warn("failed to remove staging file %s: %v", sourcePath, rmErr)
			}
		}
		return nil, err
	}

	return &ImportResponse{Document: doc}, nil
}

// ImportResult is the outcome of importing one file in a batch
type ImportResult struct {
	SourcePath string
	Document   *domain.Document
	Err        error
}

// BatchImportRequest represents a request to import many files concurrently
type BatchImportRequest struct {
	SourcePaths []string
	Move        bool
	MaxWorkers  int // Number of concurrent workers
}

// BatchImportResponse represents the aggregated outcome of a batch import
type BatchImportResponse struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []ImportResult
}

// ImportProgress reports batch progress as results arrive
type ImportProgress struct {
	Current    int
	Total      int
	SourcePath string
	Document   *domain.Document
	Err        error
}

// ExecuteBatch imports files using a worker pool
func (s *ImportService) ExecuteBatch(ctx context.Context, req BatchImportRequest) (*BatchImportResponse, error) {
	return s.executeBatch(ctx, req, nil)
}

// ExecuteBatchWithProgress imports files and reports progress per file
func (s *ImportService) ExecuteBatchWithProgress(ctx context.Context, req BatchImportRequest, progressChan chan<- ImportProgress) (*BatchImportResponse, error) {
	defer close(progressChan)
	return s.executeBatch(ctx, req, progressChan)
}

func (s *ImportService) executeBatch(ctx context.Context, req BatchImportRequest, progress chan<- ImportProgress) (*BatchImportResponse, error) {
	if len(req.SourcePaths) == 0 {
		return &BatchImportResponse{Results: []ImportResult{}}, nil
	}

	// Default to 4 workers if not specified
	maxWorkers := req.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	logger.Section("batch import")
	logger.Debug("importing %d files with %d workers", len(req.SourcePaths), maxWorkers)

	// Create channels for work distribution
	jobs := make(chan string, len(req.SourcePaths))
	results := make(chan ImportResult, len(req.SourcePaths))

	// Start workers
	var wg sync.WaitGroup
	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, req.Move, jobs, results)
		}()
	}

	// Send jobs
	for _, path := range req.SourcePaths {
		jobs <- path
	}
	close(jobs)

	// Wait for all workers to finish
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results and report progress
	response := &BatchImportResponse{Total: len(req.SourcePaths)}
	current := 0
	for result := range results {
		response.Results = append(response.Results, result)
		current++

		if result.Err != nil {
			response.Failed++
		} else {
			response.Succeeded++
		}

		if progress != nil {
			progress <- ImportProgress{
				Current:    current,
				Total:      len(req.SourcePaths),
				SourcePath: result.SourcePath,
				Document:   result.Document,
				Err:        result.Err,
			}
		}
	}

	return response, nil
}

// worker is a worker goroutine that processes import jobs
func (s *ImportService) worker(ctx context.Context, move bool, jobs <-chan string, results chan<- ImportResult) {
	for path := range jobs {
		// Check if context is cancelled
		select {
		case <-ctx.Done():
			results <- ImportResult{SourcePath: path, Err: ctx.Err()}
			continue
		default:
		}

		resp, err := s.Execute(ctx, ImportRequest{SourcePath: path, Move: move})

		result := ImportResult{SourcePath: path, Err: err}
		if err == nil {
			result.Document = resp.Document
		}
		results <- result
	}
}

// copyFile duplicates src at dst, removing the partial file on failure
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}

	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	return nil
}
