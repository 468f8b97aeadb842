package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/snapdoc/snapdoc/internal/core/domain"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create source file: %v", err)
	}
	return path
}

func TestFileStore_Commit_Success(t *testing.T) {
	store := NewFileStore(t.TempDir())
	src := writeSource(t, "render-output.pdf", "%PDF-1.4 quarterly")

	doc, err := store.Commit(context.Background(), src, "Quarterly Report", 3)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Name != "Quarterly Report.pdf" {
		t.Errorf("expected Quarterly Report.pdf, got %s", doc.Name)
	}

	stored, err := os.ReadFile(doc.Path)
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if string(stored) != "%PDF-1.4 quarterly" {
		t.Error("stored content doesn't match source")
	}
	if doc.Size != int64(len("%PDF-1.4 quarterly")) {
		t.Errorf("expected size %d, got %d", len("%PDF-1.4 quarterly"), doc.Size)
	}

	// The source is consumed on success
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("expected source file to be removed after commit")
	}
}

func TestFileStore_Commit_SanitizesDisplayName(t *testing.T) {
	store := NewFileStore(t.TempDir())
	src := writeSource(t, "out.pdf", "content")

	doc, err := store.Commit(context.Background(), src, "My/Report:2024", 1)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Name != "My_Report_2024.pdf" {
		t.Errorf("expected My_Report_2024.pdf, got %s", doc.Name)
	}
	if _, err := os.Stat(doc.Path); err != nil {
		t.Errorf("expected file at %s: %v", doc.Path, err)
	}
}

func TestFileStore_Commit_SynthesizesDefaultName(t *testing.T) {
	store := NewFileStore(t.TempDir())
	src := writeSource(t, "out.pdf", "content")

	doc, err := store.Commit(context.Background(), src, "   ", 4)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pattern := regexp.MustCompile(`^Document-\d{4}-\d{2}-\d{2}-\d{6}-4images\.pdf$`)
	if !pattern.MatchString(doc.Name) {
		t.Errorf("expected synthesized default name, got %s", doc.Name)
	}
}

func TestFileStore_Commit_MissingSource(t *testing.T) {
	store := NewFileStore(t.TempDir())

	doc, err := store.Commit(context.Background(), "/non/existent/render.pdf", "Report", 1)

	if !errors.Is(err, domain.ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
	if doc != nil {
		t.Errorf("expected nil document on error, got %+v", doc)
	}

	// Nothing was created
	docs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected empty store, got %d documents", len(docs))
	}
}

func TestFileStore_Commit_CollisionRename(t *testing.T) {
	store := NewFileStore(t.TempDir())

	src1 := writeSource(t, "a.pdf", "first invoice")
	doc1, err := store.Commit(context.Background(), src1, "Invoice", 1)
	if err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	if doc1.Name != "Invoice.pdf" {
		t.Errorf("expected Invoice.pdf, got %s", doc1.Name)
	}

	src2 := writeSource(t, "b.pdf", "second invoice")
	doc2, err := store.Commit(context.Background(), src2, "Invoice", 1)
	if err != nil {
		t.Fatalf("second commit failed: %v", err)
	}

	if doc2.Name == doc1.Name {
		t.Fatalf("expected a distinct name for the second commit, both got %s", doc1.Name)
	}
	if !strings.HasPrefix(doc2.Name, "Invoice_") || !strings.HasSuffix(doc2.Name, ".pdf") {
		t.Errorf("expected Invoice_<timestamp>.pdf, got %s", doc2.Name)
	}

	// First document is untouched
	content, err := os.ReadFile(doc1.Path)
	if err != nil {
		t.Fatalf("failed to read first document: %v", err)
	}
	if string(content) != "first invoice" {
		t.Error("first document was overwritten by the second commit")
	}

	docs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("expected 2 documents after colliding commits, got %d", len(docs))
	}
}

func TestFileStore_Commit_CopyFailureLeavesNoPartialArtifact(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	// A directory passes the existence check but cannot be copied
	srcDir := t.TempDir()

	_, err := store.Commit(context.Background(), srcDir, "Broken", 1)

	if !errors.Is(err, domain.ErrDestinationUnwritable) {
		t.Fatalf("expected ErrDestinationUnwritable, got %v", err)
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("failed to read store directory: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("expected no partial artifact, found %d entries", len(entries))
	}
}

func TestFileStore_List_OrdersNewestFirst(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	names := []string{"first.pdf", "second.pdf", "third.pdf"}
	for i, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		ts := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(path, ts, ts); err != nil {
			t.Fatalf("failed to set times on %s: %v", name, err)
		}
	}

	docs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"third.pdf", "second.pdf", "first.pdf"}
	if len(docs) != len(want) {
		t.Fatalf("expected %d documents, got %d", len(want), len(docs))
	}
	for i, name := range want {
		if docs[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, docs[i].Name)
		}
	}
}

func TestFileStore_List_BreaksTiesByName(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	ts := time.Now().Add(-time.Hour).Truncate(time.Second)
	for _, name := range []string{"banana.pdf", "apple.pdf", "cherry.pdf"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		if err := os.Chtimes(path, ts, ts); err != nil {
			t.Fatalf("failed to set times on %s: %v", name, err)
		}
	}

	docs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"apple.pdf", "banana.pdf", "cherry.pdf"}
	for i, name := range want {
		if docs[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, docs[i].Name)
		}
	}
}

func TestFileStore_List_FiltersNonDocuments(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	files := map[string]bool{
		"report.pdf":  true,
		"SCAN.PDF":    true, // extension check is case-insensitive
		"notes.txt":   false,
		"archive.zip": false,
	}
	for name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir.pdf"), 0755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	docs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	for _, doc := range docs {
		if !files[doc.Name] {
			t.Errorf("unexpected entry in listing: %s", doc.Name)
		}
	}
}

func TestFileStore_Info_ReturnsFreshSnapshot(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	path := filepath.Join(dir, "grow.pdf")
	if err := os.WriteFile(path, []byte("12345"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	doc, err := store.Info(context.Background(), "grow.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Size != 5 {
		t.Errorf("expected size 5, got %d", doc.Size)
	}

	// A second read reflects changes on disk, never a cached value
	if err := os.WriteFile(path, []byte("1234567890"), 0644); err != nil {
		t.Fatalf("failed to grow file: %v", err)
	}

	doc, err = store.Info(context.Background(), "grow.pdf")
	if err != nil {
		t.Fatalf("unexpected error on re-read: %v", err)
	}
	if doc.Size != 10 {
		t.Errorf("expected fresh size 10, got %d", doc.Size)
	}
}

func TestFileStore_Info_NotFound(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := store.Info(context.Background(), "vanished.pdf")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Names with path elements never identify stored documents
	_, err = store.Info(context.Background(), "../escape.pdf")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for path-like name, got %v", err)
	}
}

func TestFileStore_Delete_Idempotent(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "gone.pdf"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	existed, err := store.Delete(context.Background(), "gone.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !existed {
		t.Error("expected true for existing document")
	}

	existed, err = store.Delete(context.Background(), "gone.pdf")
	if err != nil {
		t.Fatalf("second delete should not error: %v", err)
	}
	if existed {
		t.Error("expected false for already-deleted document")
	}

	existed, err = store.Delete(context.Background(), "never-created.pdf")
	if err != nil {
		t.Fatalf("delete of unknown document should not error: %v", err)
	}
	if existed {
		t.Error("expected false for never-created document")
	}
}

func TestFileStore_Rename(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	src := writeSource(t, "out.pdf", "draft content")
	doc, err := store.Commit(context.Background(), src, "draft", 1)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	renamed, err := store.Rename(context.Background(), doc.Name, "Final Report")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if renamed.Name != "Final Report.pdf" {
		t.Errorf("expected Final Report.pdf, got %s", renamed.Name)
	}

	if _, err := os.Stat(filepath.Join(dir, "draft.pdf")); !os.IsNotExist(err) {
		t.Error("expected old name to be gone after rename")
	}

	content, err := os.ReadFile(renamed.Path)
	if err != nil {
		t.Fatalf("failed to read renamed document: %v", err)
	}
	if string(content) != "draft content" {
		t.Error("content changed during rename")
	}
}

func TestFileStore_Rename_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "taken.pdf"), []byte("original"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "mover.pdf"), []byte("moving"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	renamed, err := store.Rename(context.Background(), "mover.pdf", "taken")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	if renamed.Name == "taken.pdf" {
		t.Fatal("rename overwrote an existing distinct document")
	}
	if !strings.HasPrefix(renamed.Name, "taken_") {
		t.Errorf("expected collision suffix, got %s", renamed.Name)
	}

	original, err := os.ReadFile(filepath.Join(dir, "taken.pdf"))
	if err != nil {
		t.Fatalf("failed to read original: %v", err)
	}
	if string(original) != "original" {
		t.Error("pre-existing document was modified")
	}
}

func TestFileStore_Rename_NotFound(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := store.Rename(context.Background(), "missing.pdf", "anything")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveName_ReturnsDesiredWhenFree(t *testing.T) {
	store := NewFileStore(t.TempDir())

	name, err := store.resolveName("fresh.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "fresh.pdf" {
		t.Errorf("expected desired name back, got %s", name)
	}
}

func TestResolveName_SuffixesOnCollision(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "busy.pdf"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	name, err := store.resolveName("busy.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name == "busy.pdf" {
		t.Fatal("resolver returned a name that already exists")
	}
	if !regexp.MustCompile(`^busy_\d+\.pdf$`).MatchString(name) {
		t.Errorf("expected busy_<timestamp>.pdf, got %s", name)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Errorf("resolved name %s already exists", name)
	}
}

func TestResolveName_BoundedRetries(t *testing.T) {
	// Pointing the store at a file makes every existence check fail with
	// ENOTDIR, which the resolver treats as a standing collision.
	dir := t.TempDir()
	notADir := filepath.Join(dir, "not-a-directory")
	if err := os.WriteFile(notADir, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	store := NewFileStore(notADir)

	_, err := store.resolveName("stuck.pdf")
	if !errors.Is(err, domain.ErrCollisionUnresolved) {
		t.Fatalf("expected ErrCollisionUnresolved, got %v", err)
	}
}
