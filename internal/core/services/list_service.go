package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/snapdoc/snapdoc/internal/core/domain"
	"github.com/snapdoc/snapdoc/internal/core/ports"
)

// ListService handles listing, sorting, and searching documents
type ListService struct {
	store ports.DocumentStore
}

// NewListService creates a new list service
func NewListService(store ports.DocumentStore) *ListService {
	return &ListService{
		store: store,
	}
}

// ListRequest represents a request to list documents
type ListRequest struct {
	SortBy  string // "modified", "name", "size" (default: modified)
	Reverse bool   // Reverse sort order
}

// ListResponse represents the response from listing documents
type ListResponse struct {
	Documents []domain.Document
	Total     int
	TotalSize int64
}

// Execute lists documents with the requested ordering
func (s *ListService) Execute(ctx context.Context, req ListRequest) (*ListResponse, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs = sortDocuments(docs, req.SortBy, req.Reverse)

	var totalSize int64
	for _, doc := range docs {
		totalSize += doc.Size
	}

	return &ListResponse{
		Documents: docs,
		Total:     len(docs),
		TotalSize: totalSize,
	}, nil
}

func sortDocuments(docs []domain.Document, sortBy string, reverse bool) []domain.Document {
	sort.Slice(docs, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "name":
			less = strings.ToLower(docs[i].Name) < strings.ToLower(docs[j].Name)
		case "size":
			if docs[i].Size != docs[j].Size {
				less = docs[i].Size > docs[j].Size // largest first
			} else {
				less = docs[i].Name < docs[j].Name
			}
		default: // "modified", newest first
			if !docs[i].ModifiedAt.Equal(docs[j].ModifiedAt) {
				less = docs[i].ModifiedAt.After(docs[j].ModifiedAt)
			} else {
				less = docs[i].Name < docs[j].Name
			}
		}
		if reverse {
			return !less
		}
		return less
	})
	return docs
}

// SearchRequest represents a search query
type SearchRequest struct {
	Query string
}

// SearchResponse represents search results, best match first
type SearchResponse struct {
	Documents []domain.Document
	Total     int
}

// Search performs fuzzy search on document names
func (s *ListService) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	query := strings.TrimSpace(req.Query)

	// If no query, return all
	if query == "" {
		return &SearchResponse{
			Documents: docs,
			Total:     len(docs),
		}, nil
	}

	type scoredMatch struct {
		doc   domain.Document
		score int
	}

	var matches []scoredMatch
	for _, doc := range docs {
		// Display name match outranks a match that needs the extension
		if score := matchScore(doc.DisplayName(), query); score > 0 {
			matches = append(matches, scoredMatch{doc: doc, score: score + 1000})
			continue
		}
		if score := matchScore(doc.Name, query); score > 0 {
			matches = append(matches, scoredMatch{doc: doc, score: score + 500})
		}
	}

	// Sort by score (highest first), preserving list order for ties
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]domain.Document, len(matches))
	for i, m := range matches {
		result[i] = m.doc
	}

	return &SearchResponse{
		Documents: result,
		Total:     len(result),
	}, nil
}

// matchScore rates how well query matches text. Zero means no match,
// higher scores indicate better matches.
func matchScore(text, query string) int {
	if text == "" || query == "" {
		return 0
	}

	textLower := strings.ToLower(text)
	queryLower := strings.ToLower(query)

	switch {
	case text == query:
		return 10000
	case textLower == queryLower:
		return 9000
	case strings.HasPrefix(textLower, queryLower):
		return 7000
	case strings.Contains(textLower, queryLower):
		return 5000
	}

	// Subsequence match: every query rune must appear in text, in order.
	// Consecutive runs and word-boundary hits score extra.
	textRunes := []rune(textLower)
	queryRunes := []rune(queryLower)

	score := 0
	run := 0
	last := -2
	qi := 0

	for ti := 0; ti < len(textRunes) && qi < len(queryRunes); ti++ {
		if textRunes[ti] != queryRunes[qi] {
			continue
		}

		score += 100
		if ti == last+1 {
			run++
			score += run * 50
		} else {
			run = 0
		}
		if ti == 0 {
			score += 300
		} else if isWordBoundary(textRunes[ti-1]) {
			score += 200
		}

		last = ti
		qi++
	}

	if qi != len(queryRunes) {
		return 0
	}

	// Tighter matches score higher
	span := last + 1
	score -= (span - len(queryRunes)) * 10

	return score
}

func isWordBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '_' || r == '.'
}
