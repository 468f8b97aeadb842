package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/pkg/ui"
)

var shareReveal bool

// shareCmd represents the share command
var shareCmd = &cobra.Command{
	Use:   "share [query]",
	Short: "Copy a document's path to the clipboard",
	Long: `Copy the absolute path of a document to the system clipboard so it can
be pasted into a mail client, chat or upload dialog.

With --reveal the document is also shown in the system file manager.

Examples:
  snapdoc share
  snapdoc share invoice
  snapdoc share receipt --reveal`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShare,
}

func init() {
	shareCmd.Flags().BoolVar(&shareReveal, "reveal", false, "Also reveal the document in the file manager")
}

func runShare(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	doc, err := selectDocument(query)
	if err != nil || doc == nil {
		return err
	}

	if err := clipboard.WriteAll(doc.Path); err != nil {
		fmt.Println(ui.FormatWarning("Clipboard access failed, please copy manually:"))
		fmt.Println("  " + ui.StyleBold.Render(doc.Path))
	} else {
		fmt.Println(ui.FormatSuccess("Path copied to clipboard"))
		fmt.Println("  " + ui.StyleMuted.Render(doc.Path))
	}

	if shareReveal {
		if err := docOpener.Reveal(getContext(), doc.Path); err != nil {
			fmt.Println(ui.FormatWarning("Could not open file manager: " + err.Error()))
		}
	}

	return nil
}
