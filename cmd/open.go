package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/pkg/ui"
)

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:   "open [query]",
	Short: "Open a document in the PDF viewer",
	Long: `Open a document in the system PDF viewer.

Without a query an interactive fuzzy finder opens over the whole library.
The viewer is taken from the config (pdf_viewer) and falls back to the
platform default when unset.

Examples:
  snapdoc open
  snapdoc open invoice
  snapdoc open "lab report"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	doc, err := selectDocument(query)
	if err != nil || doc == nil {
		return err
	}

	fmt.Println(ui.FormatInfo("Opening: " + doc.DisplayName()))

	if err := docOpener.Open(getContext(), doc.Path); err != nil {
		fmt.Println(ui.FormatError("Failed to open viewer: " + err.Error()))
		fmt.Println(ui.FormatInfo("You can open it manually: " + doc.Path))
		return err
	}

	return nil
}
