package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/pkg/ui"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the staging cache",
	Long: `Remove leftover staging files from the cache directory.

Interrupted renders and failed imports can leave partial files in the
staging cache. Stored documents are never touched.

Examples:
  snapdoc clean`,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	fmt.Print(ui.StyleWarning.Render("Cleaning staging cache... "))

	removed, err := appLibrary.CleanCache()
	if err != nil {
		fmt.Println(ui.FormatError("Failed"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Done"))
	if removed == 0 {
		fmt.Println(ui.FormatMuted("Cache was already empty."))
	} else {
		fmt.Println(ui.FormatMuted(fmt.Sprintf("%d entries removed.", removed)))
	}
	return nil
}
