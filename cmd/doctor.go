package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your snapdoc installation",
	Long: `Diagnose issues with the snapdoc setup.

Checks for:
  - Library directory integrity
  - Configuration file existence
  - Renderer tools (ImageMagick, img2pdf)
  - PDF viewer, clipboard and editor availability
  - Stale staging files and empty documents`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println(ui.FormatTitle("Snapdoc Doctor"))
	fmt.Println()

	// 1. Check Library Structure
	checkStep("Library Directory", func() error {
		if !appLibrary.Exists() {
			return fmt.Errorf("not found at %s", appLibrary.RootPath)
		}
		return nil
	})

	checkStep("Documents Directory", func() error {
		if _, err := os.Stat(appLibrary.DocumentsPath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s", appLibrary.DocumentsPath)
		}
		return nil
	})

	checkStep("Staging Cache", func() error {
		if _, err := os.Stat(appLibrary.CachePath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s", appLibrary.CachePath)
		}

		entries, err := os.ReadDir(appLibrary.CachePath)
		if err != nil {
			return fmt.Errorf("unreadable: %v", err)
		}
		if len(entries) > 0 {
			return fmt.Errorf("%d stale entries (run 'snapdoc clean')", len(entries))
		}
		return nil
	})

	// 2. Check Config
	checkStep("Configuration File", func() error {
		if _, err := os.Stat(appLibrary.ConfigPath); os.IsNotExist(err) {
			return fmt.Errorf("missing (defaults in effect, run 'snapdoc config' to create)")
		}
		return nil
	})

	// 3. Check Renderers
	checkStep("ImageMagick (Renderer)", func() error {
		if _, err := exec.LookPath("magick"); err == nil {
			return nil
		}
		if _, err := exec.LookPath("convert"); err == nil {
			return nil
		}
		return fmt.Errorf("not found (required for 'snapdoc create' with the magick renderer)")
	})

	checkStep("img2pdf (Renderer)", func() error {
		if _, err := exec.LookPath("img2pdf"); err != nil {
			return fmt.Errorf("not found (alternative renderer, set renderer: img2pdf to use)")
		}
		return nil
	})

	checkStep(fmt.Sprintf("Configured Renderer (%s)", appConfig.Renderer), func() error {
		if !docRenderer.IsAvailable() {
			return fmt.Errorf("%s not found in PATH", docRenderer.Name())
		}
		return nil
	})

	// 4. Check Environment
	checkStep("PDF Viewer", func() error {
		if appConfig.PDFViewer != "" {
			if _, err := exec.LookPath(appConfig.PDFViewer); err != nil {
				return fmt.Errorf("configured viewer '%s' not found in PATH", appConfig.PDFViewer)
			}
			return nil
		}

		switch runtime.GOOS {
		case "darwin":
			if _, err := exec.LookPath("open"); err != nil {
				return fmt.Errorf("'open' not found")
			}
		case "windows":
			// 'start' is a shell builtin, nothing to probe
		default:
			if _, err := exec.LookPath("xdg-open"); err != nil {
				return fmt.Errorf("'xdg-open' not found (install xdg-utils or set pdf_viewer)")
			}
		}
		return nil
	})

	checkStep("Clipboard", func() error {
		if clipboard.Unsupported {
			return fmt.Errorf("not supported on this platform ('snapdoc share' will print the path only)")
		}
		return nil
	})

	checkStep("Editor", func() error {
		if appConfig.Editor == "" && os.Getenv("EDITOR") == "" {
			return fmt.Errorf("not set (using fallback 'vi')")
		}
		return nil
	})

	fmt.Println()
	fmt.Println(ui.FormatInfo("Checking document integrity..."))

	checkStep("Document Integrity", func() error {
		docs, err := documentStore.List(getContext())
		if err != nil {
			return fmt.Errorf("cannot list documents: %v", err)
		}

		empty := 0
		for _, doc := range docs {
			if doc.Size == 0 {
				if empty == 0 {
					fmt.Println()
				}
				fmt.Printf("    %s (0 bytes)\n", doc.Name)
				empty++
			}
		}

		if empty > 0 {
			return fmt.Errorf("found %d empty documents", empty)
		}
		return nil
	})
}

// checkStep runs a check function and prints the result nicely
func checkStep(name string, check func() error) {
	if err := check(); err == nil {
		fmt.Printf("%s %s\n", ui.StyleSuccess.Render(ui.IconSuccess), name)
	} else {
		fmt.Printf("%s %s\n", ui.StyleError.Render(ui.IconError), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	}
}
