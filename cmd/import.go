package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/internal/core/services"
	"github.com/snapdoc/snapdoc/pkg/ui"
)

var (
	importName string
	importMove bool
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <pdf>...",
	Short: "Import existing PDF files into the library",
	Long: `Import PDF files into the library under safe, collision-free names.

By default the original files are left in place. With --move the originals
are removed after a successful import.

Multiple files are imported concurrently.

Examples:
  snapdoc import ~/Downloads/statement.pdf
  snapdoc import scan.pdf --name "Tax Return 2024"
  snapdoc import ~/Downloads/*.pdf --move`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importName, "name", "n", "", "Display name for the document (single file only)")
	importCmd.Flags().BoolVarP(&importMove, "move", "m", false, "Remove the original files after import")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if len(args) == 1 {
		return importSingle(cmd, args[0])
	}

	if importName != "" {
		fmt.Println(ui.FormatWarning("--name is ignored when importing multiple files"))
	}

	// Show import info
	fmt.Println(ui.FormatDocument(fmt.Sprintf("Importing %d files...", len(args))))
	fmt.Println()

	// Create progress channel
	progressChan := make(chan services.ImportProgress, len(args))

	// Execute batch in goroutine
	resultChan := make(chan *services.BatchImportResponse, 1)
	errorChan := make(chan error, 1)

	go func() {
		req := services.BatchImportRequest{
			SourcePaths: args,
			Move:        importMove,
			MaxWorkers:  appConfig.MaxWorkers,
		}
		resp, err := importService.ExecuteBatchWithProgress(ctx, req, progressChan)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- resp
	}()

	// Display progress
	for progress := range progressChan {
		if progress.Err != nil {
			fmt.Printf("  [%d/%d] %s %s\n", progress.Current, progress.Total,
				ui.FormatError("failed"), ui.StyleMuted.Render(progress.SourcePath))
		} else {
			fmt.Printf("  [%d/%d] %s %s\n", progress.Current, progress.Total,
				ui.FormatSuccess("imported"), progress.Document.Name)
		}
	}

	// Wait for completion
	var response *services.BatchImportResponse
	select {
	case err := <-errorChan:
		fmt.Println(ui.FormatError("Import failed"))
		return err
	case response = <-resultChan:
	}

	// Show summary
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Total", fmt.Sprintf("%d", response.Total)))
	fmt.Println(ui.RenderKeyValue("Succeeded", ui.StyleSuccess.Render(fmt.Sprintf("%d", response.Succeeded))))
	if response.Failed > 0 {
		fmt.Println(ui.RenderKeyValue("Failed", ui.StyleError.Render(fmt.Sprintf("%d", response.Failed))))
		fmt.Println()
		fmt.Println(ui.FormatWarning("Failed imports:"))
		for _, result := range response.Results {
			if result.Err != nil {
				fmt.Println(ui.FormatMuted("  • " + result.SourcePath + ": " + result.Err.Error()))
			}
		}
	}

	return nil
}

func importSingle(cmd *cobra.Command, sourcePath string) error {
	ctx := getContext()

	fmt.Println(ui.FormatDocument("Importing " + sourcePath + "..."))

	resp, err := importService.Execute(ctx, services.ImportRequest{
		SourcePath: sourcePath,
		Name:       importName,
		Move:       importMove,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to import document"))
		return err
	}

	doc := resp.Document
	fmt.Println()
	fmt.Println(ui.FormatSuccess("Document imported!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Name", doc.Name))
	fmt.Println(ui.RenderKeyValue("Location", doc.Path))
	fmt.Println(ui.RenderKeyValue("Size", humanize.Bytes(uint64(doc.Size))))
	if importMove {
		fmt.Println(ui.FormatMuted("Original file removed."))
	} else {
		fmt.Println(ui.FormatMuted("Original file kept in place."))
	}

	return nil
}
