package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/internal/core/domain"
	"github.com/snapdoc/snapdoc/internal/core/services"
	"github.com/snapdoc/snapdoc/internal/logger"
	"github.com/snapdoc/snapdoc/pkg/ui"
)

var (
	watchKeep     bool
	watchDebounce int
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Watch a directory and import PDFs dropped into it",
	Long: `Watch a directory and import every PDF that appears in it.

This turns any folder into a drop zone for the library: point it at your
scanner output or browser download directory and new PDFs are picked up
automatically. Imports wait for a short quiet period after the last write
so half-transferred files are not grabbed.

By default the original file is moved into the library. Use --keep to
leave the original in place.

Examples:
  snapdoc watch ~/Downloads
  snapdoc watch ~/scans --keep
  snapdoc watch ~/scans --debounce 2000`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchKeep, "keep", false, "Keep original files instead of moving them")
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 500, "Quiet period in milliseconds before importing a changed file")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	// Config defaults apply when the flags were not given explicitly
	if !cmd.Flags().Changed("keep") {
		watchKeep = appConfig.WatchKeepOriginals
	}
	if !cmd.Flags().Changed("debounce") {
		watchDebounce = appConfig.WatchDebounceMS
	}
	if watchDebounce < 0 {
		watchDebounce = 0
	}

	dir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid directory: %w", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		fmt.Println(ui.FormatError("Directory not found: " + dir))
		return err
	}
	if !info.IsDir() {
		fmt.Println(ui.FormatError("Not a directory: " + dir))
		return fmt.Errorf("not a directory: %s", dir)
	}

	if filepath.Clean(dir) == filepath.Clean(appLibrary.DocumentsPath) {
		fmt.Println(ui.FormatError("Cannot watch the library's own documents directory"))
		return fmt.Errorf("watch target is the library directory")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	fmt.Println(ui.FormatDocument("Watching for PDFs: " + dir))
	if watchKeep {
		fmt.Println(ui.FormatMuted("New PDFs will be copied into the library."))
	} else {
		fmt.Println(ui.FormatMuted("New PDFs will be moved into the library."))
	}
	fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
	fmt.Println()

	// One debounce timer per path so a burst of writes to one file does
	// not delay the import of another.
	debounceDuration := time.Duration(watchDebounce) * time.Millisecond
	var mu sync.Mutex
	pending := make(map[string]*time.Timer)

	importFile := func(path string) {
		// The file may have been renamed or deleted during the quiet period
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return
		}

		resp, err := importService.Execute(ctx, services.ImportRequest{
			SourcePath: path,
			Move:       !watchKeep,
		})
		if err != nil {
			fmt.Println(ui.FormatError("Import failed: " + filepath.Base(path)))
			fmt.Println(ui.FormatMuted("  " + err.Error()))
			return
		}

		fmt.Println(ui.FormatSuccess("Imported: " + resp.Document.Name))
	}

	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()

		if timer, ok := pending[path]; ok {
			timer.Stop()
		}
		pending[path] = time.AfterFunc(debounceDuration, func() {
			mu.Lock()
			delete(pending, path)
			mu.Unlock()
			importFile(path)
		})
	}

	// Event loop
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only care about PDFs
			if !domain.HasExtension(event.Name) {
				continue
			}

			// Filter out temporary/hidden files
			baseName := filepath.Base(event.Name)
			if strings.HasPrefix(baseName, ".") || strings.HasPrefix(baseName, "~") {
				continue
			}

			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				schedule(event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)

		case <-ctx.Done():
			fmt.Println()
			fmt.Println(ui.FormatMuted("Watcher stopped"))
			return nil
		}
	}
}
