package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/pkg/config"
	"github.com/snapdoc/snapdoc/pkg/library"
	"github.com/snapdoc/snapdoc/pkg/ui"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the snapdoc library",
	Long: `Initialize the snapdoc library directory structure.

This creates the managed library at ~/.local/share/snapdoc/ with the
following structure:
  - documents/  : Your PDF documents (flat, no subdirectories)
  - cache/      : Staging area for renders and imports
  - config.yaml : Global configuration (in ~/.config/snapdoc/)`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// Create library instance
	lib, err := library.New()
	if err != nil {
		fmt.Println(ui.FormatError("Failed to determine library location"))
		return err
	}

	// Check if already initialized
	if lib.Exists() {
		fmt.Println(ui.FormatWarning("Library already initialized"))
		fmt.Println(ui.FormatMuted("Location: " + lib.RootPath))
		return nil
	}

	fmt.Println(ui.FormatDocument("Initializing snapdoc library..."))
	fmt.Println()

	if err := lib.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to initialize library"))
		return err
	}

	// Create default config
	if err := createDefaultConfig(lib); err != nil {
		fmt.Println(ui.FormatWarning("Failed to create default config: " + err.Error()))
		// Don't fail - config is optional
	} else {
		fmt.Println(ui.FormatSuccess("Default config (config.yaml) created"))
	}

	// Success message
	fmt.Println(ui.FormatSuccess("Library initialized successfully!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Location", lib.RootPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Directory structure:"))
	fmt.Println(ui.FormatMuted("  documents/  - Your PDF documents"))
	fmt.Println(ui.FormatMuted("  cache/      - Render and import staging"))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Create your first document: snapdoc create \"My Scan\" page1.jpg page2.jpg"))
	fmt.Println(ui.FormatMuted("  2. Import an existing PDF: snapdoc import statement.pdf"))
	fmt.Println(ui.FormatMuted("  3. List all documents: snapdoc list"))

	return nil
}

func createDefaultConfig(lib *library.Library) error {
	// Keep an existing config when re-running init after a partial setup
	if _, err := os.Stat(lib.ConfigPath); err == nil {
		return nil
	}

	return config.DefaultConfig().Save(lib.ConfigPath)
}
