package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"speedprobe/internal/core/domain"
	"speedprobe/internal/core/services"
	"speedprobe/pkg/ui"
)

var (
	runSizeMB      int
	runAttempts    int
	runSkipNetwork bool
	runNoSave      bool
	runCopy        bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"test"},
	Short:   "Run a full speed test (alias: test)",
	Long: `Run the complete test suite against the target server: latency,
download, upload and network information, folded into a single report.

The phases run sequentially so they do not compete for bandwidth. The
report is saved to history unless --no-save is given, and history is
pruned to the configured retention afterwards.

Examples:
  speedprobe run                    # full test with configured defaults
  speedprobe run --size 25 --copy   # 25 MB transfers, result to clipboard
  speedprobe run --json             # machine-readable report`,
	RunE: runFullTest,
}

func init() {
	runCmd.Flags().IntVar(&runSizeMB, "size", 0, "Transfer payload size in MB for both directions")
	runCmd.Flags().IntVar(&runAttempts, "attempts", 0, "Attempts per direction, best is kept")
	runCmd.Flags().BoolVar(&runSkipNetwork, "skip-network", false, "Skip the network information phase")
	runCmd.Flags().BoolVar(&runNoSave, "no-save", false, "Do not save the report to history")
	runCmd.Flags().BoolVar(&runCopy, "copy", false, "Copy the report summary to the clipboard")
}

func runFullTest(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	req := services.ReportRequest{
		Ping:        pingRequestFromConfig(),
		Download:    transferRequestFromConfig(domain.DirectionDownload),
		Upload:      transferRequestFromConfig(domain.DirectionUpload),
		SkipNetwork: runSkipNetwork,
		Save:        !runNoSave && appConfig.SaveHistory,
	}
	if runSizeMB > 0 {
		req.Download.SizeMB = runSizeMB
		req.Upload.SizeMB = runSizeMB
	}
	if runAttempts > 0 {
		req.Download.Attempts = runAttempts
		req.Upload.Attempts = runAttempts
	}

	if !useJSON() {
		fmt.Println(ui.FormatRocket("Running full speed test against " + apiClient.BaseURL()))
		fmt.Println(ui.FormatMuted(fmt.Sprintf("  %d pings, %d MB down, %d MB up, best of %d",
			req.Ping.Count, req.Download.SizeMB, req.Upload.SizeMB, req.Download.Attempts)))
		fmt.Println()
	}

	report, err := reportService.Execute(ctx, req)
	if err != nil {
		if report != nil {
			// The test itself succeeded, only persistence failed
			fmt.Println(ui.FormatWarning("Could not save report: " + err.Error()))
		} else {
			return err
		}
	}

	if req.Save && appConfig.HistoryRetention > 0 {
		if _, err := historyRepo.Prune(ctx, appConfig.HistoryRetention); err != nil {
			fmt.Println(ui.FormatWarning("Could not prune history: " + err.Error()))
		}
	}

	if runCopy {
		if err := copyReportSummary(report); err != nil {
			fmt.Println(ui.FormatWarning("Could not copy to clipboard: " + err.Error()))
		} else if !useJSON() {
			fmt.Println(ui.FormatSuccess("Summary copied to clipboard"))
			fmt.Println()
		}
	}

	if useJSON() {
		return printJSON(report)
	}

	printReport(report)
	return nil
}

// copyReportSummary puts the headline numbers on the clipboard as JSON.
func copyReportSummary(report *domain.Report) error {
	data, err := json.MarshalIndent(report.Summary, "", "  ")
	if err != nil {
		return err
	}
	return clipboard.WriteAll(string(data))
}
