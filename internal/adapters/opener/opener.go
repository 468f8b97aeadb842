package opener

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// SystemOpener implements the Opener port by handing paths to the
// desktop environment
type SystemOpener struct {
	viewer string // Configured viewer, empty means OS default
}

// NewSystemOpener creates an opener. viewer overrides the OS default
// application (e.g. zathura, skim).
func NewSystemOpener(viewer string) *SystemOpener {
	return &SystemOpener{
		viewer: viewer,
	}
}

// Open launches the document in the configured or default viewer.
func (o *SystemOpener) Open(ctx context.Context, path string) error {
	var cmd *exec.Cmd

	if o.viewer != "" {
		// Use user-configured viewer (e.g. zathura, skim)
		cmd = exec.CommandContext(ctx, o.viewer, path)
	} else {
		// Fallback to OS default
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.CommandContext(ctx, "open", path)
		case "windows":
			cmd = exec.CommandContext(ctx, "cmd", "/c", "start", path)
		default:
			cmd = exec.CommandContext(ctx, "xdg-open", path)
		}
	}

	// Start() detaches the viewer so the CLI can exit while it stays open
	if err := cmd.Start(); err != nil {
		if o.viewer != "" {
			return fmt.Errorf("failed to open '%s' with '%s': %w", path, o.viewer, err)
		}
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}

	return nil
}

// Reveal shows the document in the system file manager.
func (o *SystemOpener) Reveal(ctx context.Context, path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", "-R", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "explorer", "/select,"+path)
	default:
		// No portable select-in-manager on Linux, open the directory
		cmd = exec.CommandContext(ctx, "xdg-open", filepath.Dir(path))
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to reveal '%s': %w", path, err)
	}

	return nil
}
