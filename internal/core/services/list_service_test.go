package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/snapdoc/snapdoc/internal/core/domain"
	"github.com/snapdoc/snapdoc/internal/core/ports/mocks"
)

func seedDoc(store *mocks.MockDocumentStore, name string, size int64, modified time.Time) {
	store.Seed(domain.Document{
		Name:       name,
		Path:       "/mock/library/" + name,
		Size:       size,
		ModifiedAt: modified,
	})
}

func docNames(docs []domain.Document) []string {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names
}

func TestListService_Execute(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		request       ListRequest
		expectedOrder []string
	}{
		{
			name:          "default sorts newest first",
			request:       ListRequest{SortBy: "modified"},
			expectedOrder: []string{"alpha.pdf", "gamma.pdf", "beta.pdf"},
		},
		{
			name:          "modified reversed sorts oldest first",
			request:       ListRequest{SortBy: "modified", Reverse: true},
			expectedOrder: []string{"beta.pdf", "gamma.pdf", "alpha.pdf"},
		},
		{
			name:          "unknown sort key falls back to modified",
			request:       ListRequest{SortBy: "created"},
			expectedOrder: []string{"alpha.pdf", "gamma.pdf", "beta.pdf"},
		},
		{
			name:          "sort by name",
			request:       ListRequest{SortBy: "name"},
			expectedOrder: []string{"alpha.pdf", "beta.pdf", "gamma.pdf"},
		},
		{
			name:          "sort by name reversed",
			request:       ListRequest{SortBy: "name", Reverse: true},
			expectedOrder: []string{"gamma.pdf", "beta.pdf", "alpha.pdf"},
		},
		{
			name:          "sort by size puts largest first",
			request:       ListRequest{SortBy: "size"},
			expectedOrder: []string{"alpha.pdf", "gamma.pdf", "beta.pdf"},
		},
		{
			name:          "sort by size reversed puts smallest first",
			request:       ListRequest{SortBy: "size", Reverse: true},
			expectedOrder: []string{"beta.pdf", "gamma.pdf", "alpha.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockDocumentStore()
			seedDoc(store, "alpha.pdf", 300, base.Add(3*time.Hour))
			seedDoc(store, "beta.pdf", 100, base.Add(1*time.Hour))
			seedDoc(store, "gamma.pdf", 200, base.Add(2*time.Hour))

			svc := NewListService(store)
			resp, err := svc.Execute(context.Background(), tt.request)
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}

			if resp.Total != 3 {
				t.Errorf("expected total 3, got %d", resp.Total)
			}
			if resp.TotalSize != 600 {
				t.Errorf("expected total size 600, got %d", resp.TotalSize)
			}

			names := docNames(resp.Documents)
			for i, want := range tt.expectedOrder {
				if names[i] != want {
					t.Errorf("position %d: expected %q, got %q (full order: %v)", i, want, names[i], names)
				}
			}
		})
	}
}

func TestListService_EmptyStore(t *testing.T) {
	svc := NewListService(mocks.NewMockDocumentStore())

	resp, err := svc.Execute(context.Background(), ListRequest{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if resp.Total != 0 || resp.TotalSize != 0 {
		t.Errorf("expected empty response, got total=%d size=%d", resp.Total, resp.TotalSize)
	}
}

func TestListService_StoreError(t *testing.T) {
	store := mocks.NewMockDocumentStore()
	store.SetShouldFail(true, errors.New("disk gone"))
	svc := NewListService(store)

	if _, err := svc.Execute(context.Background(), ListRequest{}); err == nil {
		t.Fatal("expected error from failing store, got nil")
	}
}

func TestListService_Search(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		query         string
		expectedCount int
		expectedFirst string
	}{
		{
			name:          "exact display name match",
			query:         "Invoice March",
			expectedCount: 1,
			expectedFirst: "Invoice March.pdf",
		},
		{
			name:          "prefix outranks substring",
			query:         "invoice",
			expectedCount: 2,
			expectedFirst: "Invoice March.pdf",
		},
		{
			name:          "case insensitive",
			query:         "LEASE",
			expectedCount: 1,
			expectedFirst: "Lease Agreement.pdf",
		},
		{
			name:          "extension matches through full name",
			query:         "pdf",
			expectedCount: 3,
		},
		{
			name:          "no results",
			query:         "zzz",
			expectedCount: 0,
		},
		{
			name:          "empty query returns all",
			query:         "",
			expectedCount: 3,
		},
		{
			name:          "whitespace query returns all",
			query:         "   ",
			expectedCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockDocumentStore()
			seedDoc(store, "Invoice March.pdf", 100, base.Add(2*time.Hour))
			seedDoc(store, "Lease Agreement.pdf", 200, base.Add(1*time.Hour))
			seedDoc(store, "Old Invoice Copy.pdf", 300, base)

			svc := NewListService(store)
			resp, err := svc.Search(context.Background(), SearchRequest{Query: tt.query})
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}

			if resp.Total != tt.expectedCount {
				t.Errorf("expected %d results, got %d (%v)", tt.expectedCount, resp.Total, docNames(resp.Documents))
			}
			if tt.expectedFirst != "" && len(resp.Documents) > 0 {
				if resp.Documents[0].Name != tt.expectedFirst {
					t.Errorf("expected first result %q, got %q", tt.expectedFirst, resp.Documents[0].Name)
				}
			}
		})
	}
}

func TestListService_SearchRanking(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	store := mocks.NewMockDocumentStore()
	seedDoc(store, "Invoice.pdf", 100, base)                 // prefix match
	seedDoc(store, "Monthly Invoice.pdf", 100, base)         // substring match
	seedDoc(store, "Irregular Novel Excerpt.pdf", 100, base) // subsequence match only

	svc := NewListService(store)
	resp, err := svc.Search(context.Background(), SearchRequest{Query: "inv"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if resp.Total != 3 {
		t.Fatalf("expected 3 matches, got %d (%v)", resp.Total, docNames(resp.Documents))
	}

	expected := []string{"Invoice.pdf", "Monthly Invoice.pdf", "Irregular Novel Excerpt.pdf"}
	names := docNames(resp.Documents)
	for i, want := range expected {
		if names[i] != want {
			t.Errorf("rank %d: expected %q, got %q", i, want, names[i])
		}
	}
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		query    string
		expected int // exact tier value, or -1 for "some positive subsequence score"
	}{
		{"exact match", "Invoice.pdf", "Invoice.pdf", 10000},
		{"case insensitive exact", "Invoice.pdf", "invoice.PDF", 9000},
		{"prefix", "Invoice March", "invoice", 7000},
		{"substring", "Old Invoice Copy", "invoice", 5000},
		{"subsequence", "Lease Agreement", "lag", -1},
		{"word initials", "Quarterly Tax Report", "qtr", -1},
		{"wrong order", "Invoice", "vni", 0},
		{"missing characters", "Invoice", "xyz", 0},
		{"empty query", "Invoice", "", 0},
		{"empty text", "", "invoice", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := matchScore(tt.text, tt.query)
			switch {
			case tt.expected == -1:
				if score <= 0 {
					t.Errorf("expected positive score, got %d", score)
				}
				if score >= 5000 {
					t.Errorf("subsequence match should rank below substring tier, got %d", score)
				}
			default:
				if score != tt.expected {
					t.Errorf("expected score %d, got %d", tt.expected, score)
				}
			}
		})
	}
}
