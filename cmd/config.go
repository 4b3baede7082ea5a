package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"speedprobe/pkg/config"
	"speedprobe/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the speedprobe configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appDir.ConfigPath

		// Write defaults first so the user edits a populated file
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := config.DefaultConfig().Save(path); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		c := exec.Command(editor, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}
