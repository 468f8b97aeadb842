package domain

import (
	"testing"
	"time"
)

func TestDocument_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Invoice.pdf", "Invoice"},
		{"SCAN.PDF", "SCAN"},
		{"report.v2.pdf", "report.v2"},
		{"strange", "strange"},
	}

	for _, tt := range tests {
		doc := &Document{Name: tt.name}
		if got := doc.DisplayName(); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestDocument_DisplayDate(t *testing.T) {
	doc := &Document{ModifiedAt: time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)}

	if got := doc.DisplayDate("2006-01-02"); got != "2025-06-15" {
		t.Errorf("DisplayDate = %q, want 2025-06-15", got)
	}

	// Empty layout falls back to a usable default
	if got := doc.DisplayDate(""); got != "2025-06-15 09:30" {
		t.Errorf("DisplayDate with empty layout = %q", got)
	}
}

func TestDocument_MatchesQuery(t *testing.T) {
	doc := &Document{Name: "Quarterly Report.pdf"}

	if !doc.MatchesQuery("quarterly") {
		t.Error("expected case-insensitive match on 'quarterly'")
	}
	if !doc.MatchesQuery("Report") {
		t.Error("expected match on 'Report'")
	}
	if doc.MatchesQuery("invoice") {
		t.Error("did not expect match on 'invoice'")
	}
}
