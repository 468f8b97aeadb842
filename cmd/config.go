package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/pkg/config"
	"github.com/snapdoc/snapdoc/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the snapdoc configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appLibrary.ConfigPath

		// Write the defaults first so there is something to edit
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := config.DefaultConfig().Save(path); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
			fmt.Println(ui.FormatInfo("Created default config: " + path))
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))

		editor := GetPreferredEditor()

		c := exec.Command(editor, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}
