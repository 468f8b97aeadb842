package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/internal/adapters/opener"
	"github.com/snapdoc/snapdoc/internal/adapters/renderer"
	"github.com/snapdoc/snapdoc/internal/adapters/storage"
	"github.com/snapdoc/snapdoc/internal/core/ports"
	"github.com/snapdoc/snapdoc/internal/core/services"
	"github.com/snapdoc/snapdoc/internal/logger"
	"github.com/snapdoc/snapdoc/pkg/config"
	"github.com/snapdoc/snapdoc/pkg/library"
	"github.com/snapdoc/snapdoc/pkg/ui"
)

var (
	// Global library instance
	appLibrary *library.Library
	appConfig  *config.Config

	// Adapters
	documentStore *storage.FileStore
	docRenderer   ports.Renderer
	docOpener     *opener.SystemOpener

	// Services
	createService *services.CreateService
	importService *services.ImportService
	listService   *services.ListService

	verboseFlag bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "snapdoc",
	Short: "Snapdoc - A PDF document library for scanned images",
	Long: ui.StyleTitle.Render("Snapdoc") + " - PDF Document Library\n\n" +
		"Bind images into PDF documents and manage the resulting library.\n" +
		"Documents get safe, collision-free names in one flat directory you never\n" +
		"have to organize by hand.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose diagnostic output")
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(verboseFlag)

	// Skip initialization for init command
	if cmd.Name() == "init" {
		return nil
	}

	// Create library instance
	lib, err := library.New()
	if err != nil {
		return fmt.Errorf("failed to initialize library: %w", err)
	}
	appLibrary = lib

	// Check if library exists
	if !appLibrary.Exists() {
		fmt.Println(ui.FormatError("Library not initialized"))
		fmt.Println(ui.FormatInfo("Run 'snapdoc init' to create the library"))
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(appLibrary.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	appConfig = cfg
	ui.SetTheme(appConfig.ColorTheme)

	// Initialize adapters
	documentStore = storage.NewFileStore(appLibrary.DocumentsPath)
	docRenderer = rendererFor(appConfig.Renderer)
	docOpener = opener.NewSystemOpener(appConfig.PDFViewer)

	// Check if the configured renderer is installed (for the create command).
	// A --renderer override is validated by the command itself.
	if cmd.Name() == "create" && !cmd.Flags().Changed("renderer") {
		if !docRenderer.IsAvailable() {
			fmt.Println(ui.FormatError(docRenderer.Name() + " not found"))
			fmt.Println(ui.FormatInfo("Install it or set a different renderer in the config"))
			os.Exit(1)
		}
	}

	// Initialize services
	createService = services.NewCreateService(docRenderer, documentStore, appLibrary)
	importService = services.NewImportService(documentStore, appLibrary)
	listService = services.NewListService(documentStore)

	return nil
}

// rendererFor maps a renderer name from config or flag to its adapter
func rendererFor(name string) ports.Renderer {
	if name == "img2pdf" {
		return renderer.NewImg2pdfRenderer(appConfig)
	}
	return renderer.NewMagickRenderer(appConfig)
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
