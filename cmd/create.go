package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/internal/core/services"
	"github.com/snapdoc/snapdoc/pkg/ui"
)

var (
	createRenderer string
	createOpen     bool
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create [title] <image>...",
	Short: "Render images into a new PDF document",
	Long: `Render one or more images into a single PDF and store it in the library.

The first argument is the document title unless it names an existing file,
in which case all arguments are treated as images and the document gets a
generated name (Document-<date>-<n>images.pdf).

Page order follows argument order.

Examples:
  snapdoc create "Lease Agreement" page1.jpg page2.jpg
  snapdoc create scan.png                    # generated name
  snapdoc create "Receipt" scan.jpg --open`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createRenderer, "renderer", "r", "", "Renderer to use (magick, img2pdf)")
	createCmd.Flags().BoolVarP(&createOpen, "open", "o", false, "Open the document after creating it")
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	title, images := splitTitleArgs(args)
	if len(images) == 0 {
		fmt.Println(ui.FormatError("No images provided"))
		fmt.Println(ui.FormatInfo("Usage: snapdoc create [title] <image>..."))
		return fmt.Errorf("no images provided")
	}

	// A --renderer override replaces the configured adapter for this run
	if cmd.Flags().Changed("renderer") {
		if createRenderer != "magick" && createRenderer != "img2pdf" {
			return fmt.Errorf("unknown renderer '%s' (expected magick or img2pdf)", createRenderer)
		}
		docRenderer = rendererFor(createRenderer)
		if !docRenderer.IsAvailable() {
			fmt.Println(ui.FormatError(docRenderer.Name() + " not found"))
			return fmt.Errorf("renderer '%s' is not installed", createRenderer)
		}
		createService = services.NewCreateService(docRenderer, documentStore, appLibrary)
	}

	fmt.Println(ui.FormatDocument(fmt.Sprintf("Rendering %d page(s) with %s...", len(images), docRenderer.Name())))

	resp, err := createService.Execute(ctx, services.CreateRequest{
		Title:      title,
		ImagePaths: images,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to create document"))
		return err
	}

	doc := resp.Document
	fmt.Println()
	fmt.Println(ui.FormatSuccess("Document created!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Name", doc.Name))
	fmt.Println(ui.RenderKeyValue("Location", doc.Path))
	fmt.Println(ui.RenderKeyValue("Size", humanize.Bytes(uint64(doc.Size))))
	fmt.Println(ui.RenderKeyValue("Pages", strconv.Itoa(len(images))))
	fmt.Println(ui.RenderKeyValue("Renderer", resp.Renderer))

	if createOpen || appConfig.AutoOpen {
		fmt.Println()
		fmt.Println(ui.FormatInfo("Opening: " + doc.Name))
		if err := docOpener.Open(ctx, doc.Path); err != nil {
			fmt.Println(ui.FormatWarning("Could not open viewer: " + err.Error()))
		}
	}

	return nil
}

// splitTitleArgs separates an optional leading title from the image paths.
// An existing file in first position means no title was given.
func splitTitleArgs(args []string) (string, []string) {
	if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
		return "", args
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return args[0], args[1:]
}
