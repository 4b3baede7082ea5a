package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"speedprobe/pkg/appdir"
	"speedprobe/pkg/config"
	"speedprobe/pkg/ui"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the speedprobe data directory",
	Long: `Initialize the speedprobe data directory structure.

This creates the managed directory at ~/.local/share/speedprobe/ with:
  - history/    : Saved test reports (one JSON file each)
  - charts/     : Rendered history charts
and writes a default config file if none exists.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	d, err := appdir.New()
	if err != nil {
		fmt.Println(ui.FormatError("Failed to determine data directory location"))
		return err
	}

	if d.Exists() {
		fmt.Println(ui.FormatWarning("Already initialized"))
		fmt.Println(ui.FormatMuted("Location: " + d.RootPath))
		return nil
	}

	fmt.Println(ui.FormatRocket("Initializing speedprobe..."))
	fmt.Println()

	if err := d.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to create data directory"))
		return err
	}

	// Write defaults only when no config exists yet
	if _, err := os.Stat(d.ConfigPath); os.IsNotExist(err) {
		if err := config.DefaultConfig().Save(d.ConfigPath); err != nil {
			fmt.Println(ui.FormatWarning("Failed to create default config: " + err.Error()))
		} else {
			fmt.Println(ui.FormatSuccess("Default config created"))
		}
	}

	fmt.Println(ui.FormatSuccess("Initialized successfully!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Data", d.RootPath))
	fmt.Println(ui.RenderKeyValue("Config", d.ConfigPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Point at your server: speedprobe config (set base_url)"))
	fmt.Println(ui.FormatMuted("  2. Check connectivity:   speedprobe ping"))
	fmt.Println(ui.FormatMuted("  3. Run a full test:      speedprobe run"))

	return nil
}
