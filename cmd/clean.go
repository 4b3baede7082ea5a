package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"speedprobe/pkg/ui"
)

var cleanKeep int

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove saved test reports",
	Long: `Remove saved speed test reports from history.

Without flags, all reports are removed. With --keep, only the oldest
reports beyond the given count are removed.

Examples:
  speedprobe clean            # wipe history
  speedprobe clean --keep 10  # keep the 10 newest reports`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().IntVar(&cleanKeep, "keep", 0, "Keep this many of the newest reports")
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if cleanKeep > 0 {
		fmt.Print(ui.StyleWarning.Render(fmt.Sprintf("Pruning history to %d reports... ", cleanKeep)))

		removed, err := historyRepo.Prune(ctx, cleanKeep)
		if err != nil {
			fmt.Println(ui.FormatError("Failed"))
			return err
		}

		fmt.Println(ui.FormatSuccess("Done"))
		fmt.Println(ui.FormatMuted(fmt.Sprintf("%d reports removed.", removed)))
		return nil
	}

	fmt.Print(ui.StyleWarning.Render("Clearing history... "))

	removed, err := historyRepo.Clear(ctx)
	if err != nil {
		fmt.Println(ui.FormatError("Failed"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Done"))
	fmt.Println(ui.FormatMuted(fmt.Sprintf("%d reports removed.", removed)))
	return nil
}
