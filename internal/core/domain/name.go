package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// Extension is the canonical suffix every stored document name ends with.
	Extension = ".pdf"

	// MaxNameLength is the upper bound on a sanitized name, extension included.
	// Longer names are truncated, never rejected.
	MaxNameLength = 100
)

// HasExtension reports whether name ends with the canonical extension,
// ignoring case ("report.PDF" counts).
func HasExtension(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), Extension)
}

// SanitizeName converts a user-supplied display name into a filesystem-safe
// document name ending in the canonical extension.
// Converts "My/Report:2024" -> "My_Report_2024.pdf"
//
// It never fails: input that collapses to nothing yields a synthesized
// default built from the current time and the number of source images. The
// second return value reports whether that fallback was used.
func SanitizeName(raw string, imageCount int) (string, bool) {
	// Replace reserved filesystem characters and control characters
	reg := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name := reg.ReplaceAllString(raw, "_")

	name = strings.TrimSpace(name)

	// A bare extension carries no usable name
	if strings.EqualFold(name, Extension) {
		return DefaultName(imageCount, time.Now()), true
	}

	// Leading/trailing dots would hide the file or fake an extension
	name = strings.Trim(name, ".")
	name = strings.TrimSpace(name)

	if name == "" {
		return DefaultName(imageCount, time.Now()), true
	}

	// Truncate before enforcing the extension so the suffix cannot be lost
	runes := []rune(name)
	if len(runes) > MaxNameLength {
		runes = runes[:MaxNameLength]
		name = string(runes)
	}

	if !HasExtension(name) {
		if len(runes) > MaxNameLength-len(Extension) {
			runes = runes[:MaxNameLength-len(Extension)]
			name = string(runes)
		}
		name += Extension
	}

	return name, false
}

// DefaultName synthesizes a document name for input that sanitized away to
// nothing. Format: Document-2025-04-30-153012-3images.pdf
func DefaultName(imageCount int, now time.Time) string {
	return fmt.Sprintf("Document-%s-%dimages%s", now.Format("2006-01-02-150405"), imageCount, Extension)
}
