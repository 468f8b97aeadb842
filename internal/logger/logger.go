// Package logger provides lightweight diagnostic logging for snapdoc.
// Debug output is gated behind the --verbose flag; warnings are always
// written so best-effort failures (stray staging files, skipped entries)
// stay visible without failing the surrounding operation.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether debug output is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects log output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message when verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[debug] "+format+"\n", args...)
	}
}

// Section prints a section header when verbose mode is enabled. It groups
// the Debug lines of a multi-step operation, such as a batch import.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message when verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[info] "+format+"\n", args...)
	}
}

// Warn prints a warning. Warnings are not gated by verbose mode: they
// report conditions the user may want to act on (a source file that could
// not be removed, a directory entry that vanished mid-listing) even though
// the operation itself carried on.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "[warn] "+format+"\n", args...)
}
