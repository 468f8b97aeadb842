package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/pkg/ui"
)

var purgeForce bool

// purgeCmd represents the purge command
var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete the entire library and all its contents",
	Long: `Delete the entire library directory and all its contents.

This is a destructive operation that will permanently delete:
  - All documents in the library
  - The staging cache
  - Configuration files

This action cannot be undone. Use with extreme caution.

Examples:
  # Purge the library with confirmation prompts
  snapdoc purge

  # Force purge without confirmation (dangerous!)
  snapdoc purge --force`,
	RunE: runPurge,
}

func init() {
	purgeCmd.Flags().BoolVarP(&purgeForce, "force", "f", false, "Skip confirmation prompts (dangerous)")
}

func runPurge(cmd *cobra.Command, args []string) error {
	if !appLibrary.Exists() {
		fmt.Println(ui.FormatWarning("Library does not exist."))
		fmt.Println(ui.FormatInfo("Library location: " + appLibrary.RootPath))
		return nil
	}

	documentCount := 0
	if docs, err := documentStore.List(getContext()); err == nil {
		documentCount = len(docs)
	}

	// Display what will be deleted
	fmt.Println(ui.StyleError.Render("WARNING: DESTRUCTIVE OPERATION"))
	fmt.Println()
	fmt.Println(ui.FormatWarning("You are about to permanently delete the entire library:"))
	fmt.Printf("  %s %s\n", ui.StyleBold.Render("Location:"), appLibrary.RootPath)
	fmt.Println()
	fmt.Println("This will delete:")
	fmt.Print(ui.RenderSimpleList([]string{
		ui.StyleMuted.Render(fmt.Sprintf("All documents (%d)", documentCount)),
		ui.StyleMuted.Render("The staging cache"),
		ui.StyleMuted.Render("Configuration"),
	}))
	fmt.Println()
	fmt.Println(ui.FormatError("THIS ACTION CANNOT BE UNDONE"))
	fmt.Println()

	if !purgeForce {
		reader := bufio.NewReader(os.Stdin)

		// First confirmation
		var firstConfirmed bool
		for {
			fmt.Print(ui.StyleError.Render("Are you absolutely sure you want to delete the library? (yes/no): "))

			response, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println(ui.FormatWarning("Invalid input. Please type 'yes' or 'no'."))
				continue
			}

			response = strings.ToLower(strings.TrimSpace(response))
			if response == "yes" {
				firstConfirmed = true
				break
			} else if response == "no" {
				firstConfirmed = false
				break
			} else {
				fmt.Println(ui.FormatWarning("Please type 'yes' or 'no' (full words required)."))
			}
		}

		if !firstConfirmed {
			fmt.Println(ui.FormatInfo("Purge cancelled."))
			return nil
		}

		fmt.Println()

		// Second confirmation - require typing the library path
		var secondConfirmed bool
		for {
			fmt.Printf("%s %s\n",
				ui.StyleError.Render("To confirm, type the library path:"),
				ui.StyleBold.Render(appLibrary.RootPath))
			fmt.Print(ui.StyleError.Render("> "))

			response, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println(ui.FormatWarning("Invalid input."))
				continue
			}

			response = strings.TrimSpace(response)
			if response == appLibrary.RootPath {
				secondConfirmed = true
				break
			} else if response == "" {
				secondConfirmed = false
				break
			} else {
				fmt.Println(ui.FormatWarning("Path does not match. Please try again or press Enter to cancel."))
			}
		}

		if !secondConfirmed {
			fmt.Println(ui.FormatInfo("Purge cancelled."))
			return nil
		}
	}

	fmt.Println()
	fmt.Println(ui.FormatInfo("Purging library..."))

	if err := os.RemoveAll(appLibrary.RootPath); err != nil {
		fmt.Println(ui.FormatError("Failed to delete library: " + err.Error()))
		return err
	}

	// Best-effort removal of the config directory
	configDir := filepath.Dir(appLibrary.ConfigPath)
	if _, err := os.Stat(configDir); err == nil {
		if err := os.RemoveAll(configDir); err != nil {
			fmt.Println(ui.FormatWarning("Warning: Failed to delete config directory: " + err.Error()))
		}
	}

	fmt.Println()
	fmt.Println(ui.FormatSuccess("Library purged successfully"))
	fmt.Println(ui.FormatInfo("To create a new library, run: snapdoc init"))

	return nil
}
