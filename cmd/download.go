package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"speedprobe/internal/core/domain"
	"speedprobe/pkg/ui"
)

var (
	downloadSizeMB   int
	downloadAttempts int
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:     "download",
	Aliases: []string{"down", "dl"},
	Short:   "Measure download throughput (alias: down, dl)",
	Long: `Download a zero-filled test payload from the server and time the
transfer on the client side. The test runs multiple attempts and keeps
the fastest, so a single slow start does not define your connection.

Timed transfers are never retried.

Examples:
  speedprobe download              # configured size, best of 3
  speedprobe download --size 50    # 50 MB payload`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().IntVar(&downloadSizeMB, "size", 0, "Payload size in MB (default from config)")
	downloadCmd.Flags().IntVar(&downloadAttempts, "attempts", 0, "Number of attempts, best is kept")
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	req := transferRequestFromConfig(domain.DirectionDownload)
	if downloadSizeMB > 0 {
		req.SizeMB = downloadSizeMB
	}
	if downloadAttempts > 0 {
		req.Attempts = downloadAttempts
	}

	fmt.Println(ui.FormatRocket(fmt.Sprintf("Downloading %d MB from %s (%d attempts)...",
		req.SizeMB, apiClient.BaseURL(), req.Attempts)))
	fmt.Println()

	summary, err := downloadService.Execute(ctx, req)
	if err != nil {
		return fmt.Errorf("download test failed: %w", err)
	}

	if useJSON() {
		return printJSON(summary)
	}

	printTransferSummary(summary)
	return nil
}
