package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"speedprobe/pkg/ui"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"hist"},
	Short:   "List saved test reports (alias: hist)",
	Long: `List previously saved speed test reports, newest first.

Each row shows when the test ran, which server it targeted, and the
headline numbers. Use 'speedprobe chart' to visualize the same data.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Show at most this many reports")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	reports, err := historyRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if historyLimit > 0 && len(reports) > historyLimit {
		reports = reports[:historyLimit]
	}

	if useJSON() {
		return printJSON(reports)
	}

	if len(reports) == 0 {
		fmt.Println(ui.FormatWarning("No saved reports yet"))
		fmt.Println(ui.FormatMuted("Run 'speedprobe run' to record your first test"))
		return nil
	}

	fmt.Println(ui.FormatTitle(fmt.Sprintf("Test History (%d reports)", len(reports))))
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "When", Width: 16},
		{Header: "Server", Width: 24},
		{Header: "Down", Width: 12, Align: "right"},
		{Header: "Up", Width: 12, Align: "right"},
		{Header: "Latency", Width: 10, Align: "right"},
	})

	for _, r := range reports {
		table.AddRow([]string{
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			r.ServerURL,
			fmt.Sprintf("%.2f Mbps", r.Summary.DownloadSpeedMbps),
			fmt.Sprintf("%.2f Mbps", r.Summary.UploadSpeedMbps),
			fmt.Sprintf("%.1f ms", r.Summary.LatencyMs),
		})
	}

	fmt.Print(table.Render())
	return nil
}
