package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/pkg/ui"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete [query]",
	Short: "Delete a document from the library",
	Long: `Delete a document from the library.

Without a query an interactive fuzzy finder opens over the whole library.
A confirmation prompt is shown unless --force is given.

Examples:
  snapdoc delete
  snapdoc delete invoice
  snapdoc delete "old receipt" --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	doc, err := selectDocument(query)
	if err != nil || doc == nil {
		return err
	}

	if !deleteForce {
		fmt.Println(ui.FormatWarning("You are about to delete:"))
		fmt.Printf("  %s %s\n",
			ui.StyleBold.Render(doc.DisplayName()),
			ui.StyleMuted.Render("("+humanize.Bytes(uint64(doc.Size))+")"))
		fmt.Println()

		reader := bufio.NewReader(os.Stdin)
		fmt.Print(ui.StyleError.Render("Delete document? (y/n): "))
		response, err := reader.ReadString('\n')
		if err != nil || strings.ToLower(strings.TrimSpace(response)) != "y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	removed, err := documentStore.Delete(getContext(), doc.Name)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to delete document"))
		return err
	}

	if !removed {
		// Already gone, e.g. removed by another process between listing
		// and confirmation.
		fmt.Println(ui.FormatWarning("Document was already removed: " + doc.Name))
		return nil
	}

	fmt.Println(ui.FormatSuccess("Deleted: " + doc.Name))
	return nil
}
