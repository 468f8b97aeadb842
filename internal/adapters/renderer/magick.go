package renderer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/snapdoc/snapdoc/pkg/config"
)

// MagickRenderer implements the Renderer port using ImageMagick
type MagickRenderer struct {
	config     *config.Config
	binaryPath string // Resolved on first use
}

// NewMagickRenderer creates a new ImageMagick-based renderer
func NewMagickRenderer(cfg *config.Config) *MagickRenderer {
	return &MagickRenderer{
		config:     cfg,
		binaryPath: "",
	}
}

// Name returns the renderer identifier used in config and output
func (r *MagickRenderer) Name() string {
	return "magick"
}

// Render converts the given images into a single PDF at outputPath.
// The primary success criterion is: does the PDF file exist?
// ImageMagick sometimes exits non-zero for recoverable warnings, so the
// artifact on disk is the most reliable indicator.
func (r *MagickRenderer) Render(ctx context.Context, imagePaths []string, outputPath string) error {
	if len(imagePaths) == 0 {
		return fmt.Errorf("no images to render")
	}

	// Validate input files exist before invoking the binary
	for _, path := range imagePaths {
		if !fileExists(path) {
			return fmt.Errorf("image not found: %s", path)
		}
	}

	if err := r.ensureBinary(); err != nil {
		return err
	}

	args := r.buildArgs(imagePaths, outputPath)

	cmd := exec.CommandContext(ctx, r.binaryPath, args...)
	output, err := cmd.CombinedOutput()

	// CRITICAL: Check if the PDF actually exists on disk
	if fileExists(outputPath) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("render failed: %w\nOutput: %s", err, string(output))
	}

	return fmt.Errorf("render failed: no PDF generated")
}

// buildArgs constructs the ImageMagick command line
// -quality : JPEG compression quality for embedded images
// -page    : output page geometry (A4, letter, ...)
func (r *MagickRenderer) buildArgs(imagePaths []string, outputPath string) []string {
	args := make([]string, 0, len(imagePaths)+5)
	args = append(args, imagePaths...)
	args = append(args,
		"-quality", strconv.Itoa(r.config.RenderQuality),
		"-page", r.config.PageSize,
		outputPath,
	)
	return args
}

// ensureBinary resolves the ImageMagick binary path
func (r *MagickRenderer) ensureBinary() error {
	// Already resolved
	if r.binaryPath != "" {
		return nil
	}

	// ImageMagick 7 ships a single `magick` binary
	if path, err := exec.LookPath("magick"); err == nil {
		r.binaryPath = path
		return nil
	}

	// Older installations only have `convert`
	if path, err := exec.LookPath("convert"); err == nil {
		r.binaryPath = path
		return nil
	}

	return fmt.Errorf("imagemagick not found: install it or set renderer to img2pdf")
}

// IsAvailable checks if ImageMagick is installed and available
func (r *MagickRenderer) IsAvailable() bool {
	if _, err := exec.LookPath("magick"); err == nil {
		return true
	}
	_, err := exec.LookPath("convert")
	return err == nil
}

// fileExists checks if a file exists and is a regular file
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
