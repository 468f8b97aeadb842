package mocks

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/snapdoc/snapdoc/internal/core/domain"
)

// CommitCall records one Commit invocation on the mock store
type CommitCall struct {
	SourcePath  string
	DisplayName string
	ImageCount  int
}

// MockDocumentStore is an in-memory implementation of the DocumentStore
// interface for testing services and commands without touching disk
type MockDocumentStore struct {
	mu         sync.Mutex
	documents  map[string]domain.Document
	commits    []CommitCall
	shouldFail bool
	failError  error
	clock      time.Time
}

// NewMockDocumentStore creates a new mock document store
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		documents: make(map[string]domain.Document),
		clock:     time.Now(),
	}
}

// Commit sanitizes and stores a document record in memory
func (m *MockDocumentStore) Commit(ctx context.Context, sourcePath, displayName string, imageCount int) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commits = append(m.commits, CommitCall{
		SourcePath:  sourcePath,
		DisplayName: displayName,
		ImageCount:  imageCount,
	})

	if m.shouldFail {
		if m.failError != nil {
			return nil, m.failError
		}
		return nil, fmt.Errorf("commit failed for %s", sourcePath)
	}

	name, _ := domain.SanitizeName(displayName, imageCount)
	for i := 1; ; i++ {
		if _, exists := m.documents[name]; !exists {
			break
		}
		base, _ := domain.SanitizeName(displayName, imageCount)
		name = fmt.Sprintf("%s_%d%s", base[:len(base)-len(domain.Extension)], i, domain.Extension)
	}

	m.clock = m.clock.Add(time.Second)
	doc := domain.Document{
		Name:       name,
		Path:       "/mock/library/" + name,
		Size:       int64(4096 + len(name)),
		ModifiedAt: m.clock,
	}
	m.documents[name] = doc
	return &doc, nil
}

// List returns all stored documents, newest first
func (m *MockDocumentStore) List(ctx context.Context) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shouldFail && m.failError != nil {
		return nil, m.failError
	}

	docs := make([]domain.Document, 0, len(m.documents))
	for _, d := range m.documents {
		docs = append(docs, d)
	}
	for i := 0; i < len(docs); i++ {
		for j := i + 1; j < len(docs); j++ {
			if docs[j].ModifiedAt.After(docs[i].ModifiedAt) {
				docs[i], docs[j] = docs[j], docs[i]
			}
		}
	}
	return docs, nil
}

// Info returns the stored record for a document
func (m *MockDocumentStore) Info(ctx context.Context, name string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.documents[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}
	return &doc, nil
}

// Delete removes a document record, reporting whether it existed
func (m *MockDocumentStore) Delete(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.documents[name]; !ok {
		return false, nil
	}
	delete(m.documents, name)
	return true, nil
}

// Rename moves a record to a new sanitized name
func (m *MockDocumentStore) Rename(ctx context.Context, name, newDisplayName string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.documents[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}

	newName, _ := domain.SanitizeName(newDisplayName, 0)
	if _, exists := m.documents[newName]; exists && newName != name {
		newName = fmt.Sprintf("%s_%d%s", newName[:len(newName)-len(domain.Extension)], time.Now().UnixNano(), domain.Extension)
	}

	delete(m.documents, name)
	doc.Name = newName
	doc.Path = "/mock/library/" + newName
	m.documents[newName] = doc
	return &doc, nil
}

// Seed inserts a document record directly, bypassing Commit
func (m *MockDocumentStore) Seed(doc domain.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[doc.Name] = doc
}

// SetShouldFail makes subsequent operations fail
func (m *MockDocumentStore) SetShouldFail(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFail = fail
	m.failError = err
}

// GetCommits returns a copy of all recorded Commit calls
func (m *MockDocumentStore) GetCommits() []CommitCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]CommitCall, len(m.commits))
	copy(calls, m.commits)
	return calls
}

// Reset clears records, calls, and failure state
func (m *MockDocumentStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents = make(map[string]domain.Document)
	m.commits = nil
	m.shouldFail = false
	m.failError = nil
}

// --- MockRenderer ---

// RenderCall records one Render invocation
type RenderCall struct {
	ImagePaths []string
	OutputPath string
}

// MockRenderer is a mock implementation of the Renderer interface
type MockRenderer struct {
	mu          sync.Mutex
	calls       []RenderCall
	shouldFail  bool
	failError   error
	writeOutput bool
	available   bool
}

// NewMockRenderer creates a new mock renderer
func NewMockRenderer() *MockRenderer {
	return &MockRenderer{available: true}
}

// Render records the call and optionally writes a placeholder output file
func (m *MockRenderer) Render(ctx context.Context, imagePaths []string, outputPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	paths := make([]string, len(imagePaths))
	copy(paths, imagePaths)
	m.calls = append(m.calls, RenderCall{ImagePaths: paths, OutputPath: outputPath})

	if m.shouldFail {
		if m.failError != nil {
			return m.failError
		}
		return fmt.Errorf("render failed for %s", outputPath)
	}

	if m.writeOutput {
		return os.WriteFile(outputPath, []byte("%PDF-1.4 mock"), 0644)
	}
	return nil
}

// Name returns the mock tool name
func (m *MockRenderer) Name() string {
	return "mock"
}

// IsAvailable reports the configured availability
func (m *MockRenderer) IsAvailable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.available
}

// SetAvailable controls what IsAvailable reports
func (m *MockRenderer) SetAvailable(available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.available = available
}

// SetShouldFail makes subsequent Render calls fail
func (m *MockRenderer) SetShouldFail(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFail = fail
	m.failError = err
}

// SetWriteOutput makes Render write a placeholder file at the output path,
// for tests that pair the mock with a real store
func (m *MockRenderer) SetWriteOutput(write bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeOutput = write
}

// GetCalls returns a copy of all recorded Render calls
func (m *MockRenderer) GetCalls() []RenderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]RenderCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Reset clears calls and failure state
func (m *MockRenderer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.shouldFail = false
	m.failError = nil
	m.writeOutput = false
	m.available = true
}

// --- MockOpener ---

// MockOpener is a mock implementation of the Opener interface
type MockOpener struct {
	mu         sync.Mutex
	opened     []string
	revealed   []string
	shouldFail bool
	failError  error
}

// NewMockOpener creates a new mock opener
func NewMockOpener() *MockOpener {
	return &MockOpener{}
}

// Open records the opened path
func (m *MockOpener) Open(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = append(m.opened, path)
	if m.shouldFail {
		if m.failError != nil {
			return m.failError
		}
		return fmt.Errorf("open failed for %s", path)
	}
	return nil
}

// Reveal records the revealed path
func (m *MockOpener) Reveal(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revealed = append(m.revealed, path)
	if m.shouldFail {
		if m.failError != nil {
			return m.failError
		}
		return fmt.Errorf("reveal failed for %s", path)
	}
	return nil
}

// SetShouldFail makes subsequent calls fail
func (m *MockOpener) SetShouldFail(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFail = fail
	m.failError = err
}

// GetOpened returns a copy of all opened paths
func (m *MockOpener) GetOpened() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	opened := make([]string, len(m.opened))
	copy(opened, m.opened)
	return opened
}

// GetRevealed returns a copy of all revealed paths
func (m *MockOpener) GetRevealed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	revealed := make([]string, len(m.revealed))
	copy(revealed, m.revealed)
	return revealed
}

// Reset clears calls and failure state
func (m *MockOpener) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = nil
	m.revealed = nil
	m.shouldFail = false
	m.failError = nil
}
