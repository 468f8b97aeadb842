package domain

import (
	"strings"
	"time"
)

// Document represents one PDF artifact stored in the managed directory.
// Size and ModifiedAt are a point-in-time snapshot taken when the value was
// built; they are never cached across reads.
type Document struct {
	Name       string    // filename within the managed directory, e.g. "Invoice.pdf"
	Path       string    // absolute path to the artifact
	Size       int64     // size in bytes at snapshot time
	ModifiedAt time.Time // filesystem modification time at snapshot time
}

// DisplayName returns the document name without its extension
// "Invoice.pdf" -> "Invoice"
func (d *Document) DisplayName() string {
	if HasExtension(d.Name) {
		return d.Name[:len(d.Name)-len(Extension)]
	}
	return d.Name
}

// DisplayDate returns the modification time in the given layout,
// falling back to a sensible default when none is configured.
func (d *Document) DisplayDate(layout string) string {
	if layout == "" {
		layout = "2006-01-02 15:04"
	}
	return d.ModifiedAt.Format(layout)
}

// MatchesQuery checks if the document name contains the query string
func (d *Document) MatchesQuery(query string) bool {
	return strings.Contains(strings.ToLower(d.Name), strings.ToLower(query))
}
