package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/internal/core/domain"
	"github.com/snapdoc/snapdoc/pkg/ui"
)

var renameCmd = &cobra.Command{
	Use:   "rename [query] [new-name]",
	Short: "Rename a document",
	Long: `Rename a document safely within the library.

The new name is sanitized the same way as at creation time and a numeric
suffix is appended when it would collide with an existing document.

Examples:
  snapdoc rename                         # Interactive selection, prompted name
  snapdoc rename invoice "Invoice March"
  snapdoc rename receipt`,
	Args: cobra.MaximumNArgs(2),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	var query string
	var newName string

	if len(args) > 0 {
		query = args[0]
	}
	if len(args) > 1 {
		newName = args[1]
	}

	doc, err := selectDocument(query)
	if err != nil || doc == nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.FormatInfo("Selected Document:"))
	fmt.Println(ui.RenderKeyValue("Name", doc.Name))
	fmt.Println(ui.RenderKeyValue("Location", doc.Path))
	fmt.Println()

	if newName == "" {
		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print(ui.StylePrimary.Render("Enter new name: "))
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			newName = input
			break
		}
	}

	renamed, err := documentStore.Rename(getContext(), doc.Name, newName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Println(ui.FormatWarning("Document no longer exists: " + doc.Name))
			return nil
		}
		fmt.Println(ui.FormatError("Failed to rename document"))
		return err
	}

	if renamed.Name == doc.Name {
		fmt.Println(ui.FormatWarning("New name resolves to the current name. Nothing to do."))
		return nil
	}

	fmt.Println()
	fmt.Println(ui.FormatSuccess("Renamed successfully!"))
	fmt.Println(ui.RenderKeyValue("Old Name", doc.Name))
	fmt.Println(ui.RenderKeyValue("New Name", renamed.Name))

	return nil
}
