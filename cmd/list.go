package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/internal/core/services"
	"github.com/snapdoc/snapdoc/pkg/ui"
)

var (
	listSortBy  string
	listReverse bool
	listLimit   int
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all documents in the library",
	Aliases: []string{"ls"},
	Long: `List all documents in the library in a table format.

Examples:
  snapdoc list
  snapdoc list --sort name
  snapdoc list --sort size --reverse
  snapdoc list --limit 10`,
	RunE: runList,
}

func init() {
	// Sort defaults to "modified", but the config default wins when the
	// flag is not set explicitly
	listCmd.Flags().StringVar(&listSortBy, "sort", "modified", "Sort by field (modified, name, size)")
	listCmd.Flags().BoolVar(&listReverse, "reverse", false, "Reverse sort order")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Show at most this many documents (0 = all)")
}

func runList(cmd *cobra.Command, args []string) error {
	// If the flag was NOT changed by the user, use the config default
	if !cmd.Flags().Changed("sort") {
		listSortBy = appConfig.DefaultSort
	}
	if !cmd.Flags().Changed("reverse") {
		listReverse = appConfig.ReverseSort
	}

	req := services.ListRequest{
		SortBy:  listSortBy,
		Reverse: listReverse,
	}

	ctx := getContext()
	resp, err := listService.Execute(ctx, req)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list documents"))
		return err
	}

	// Handle empty results
	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No documents in the library"))
		fmt.Println(ui.FormatInfo("Create one with: snapdoc create \"My Scan\" page1.jpg"))
		return nil
	}

	docs := resp.Documents
	if listLimit > 0 && listLimit < len(docs) {
		docs = docs[:listLimit]
	}

	fmt.Println(ui.FormatTitle("Documents"))
	fmt.Println()

	// Create table
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Name", Width: 48, Align: "left"},
		{Header: "Size", Width: 10, Align: "right"},
		{Header: "Modified", Width: 16, Align: "left"},
	})
	table.SetMaxWidth(appConfig.TableWidth)

	for _, doc := range docs {
		table.AddRow([]string{
			doc.DisplayName(),
			humanize.Bytes(uint64(doc.Size)),
			humanize.Time(doc.ModifiedAt),
		})
	}

	fmt.Print(table.Render())
	fmt.Println()

	// Print summary
	if len(docs) < resp.Total {
		fmt.Println(ui.FormatMuted(fmt.Sprintf("Showing %d of %d documents, %s total",
			len(docs), resp.Total, humanize.Bytes(uint64(resp.TotalSize)))))
	} else {
		fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d documents, %s",
			resp.Total, humanize.Bytes(uint64(resp.TotalSize)))))
	}

	return nil
}
