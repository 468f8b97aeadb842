package cmd

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/pkg/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info [query]",
	Short: "Show details about a document",
	Long: `Show the stored name, location, size and modification time of a document.

Without a query an interactive fuzzy finder opens over the whole library.
With a query the best match is shown, or a numbered list when several
documents match.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	doc, err := selectDocument(query)
	if err != nil || doc == nil {
		return err
	}

	// Re-stat for fresh size and timestamp; the document may have changed
	// since the listing was taken.
	fresh, err := documentStore.Info(getContext(), doc.Name)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to read document: " + doc.Name))
		return err
	}

	fmt.Println(ui.FormatTitle(fresh.DisplayName()))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Name", fresh.Name))
	fmt.Println(ui.RenderKeyValue("Location", fresh.Path))
	fmt.Println(ui.RenderKeyValue("Size", humanize.Bytes(uint64(fresh.Size))+ui.StyleMuted.Render(" ("+strconv.FormatInt(fresh.Size, 10)+" bytes)")))
	fmt.Println(ui.RenderKeyValue("Modified", fresh.DisplayDate(appConfig.DisplayDateFormat)+ui.StyleMuted.Render(" ("+humanize.Time(fresh.ModifiedAt)+")")))

	return nil
}
