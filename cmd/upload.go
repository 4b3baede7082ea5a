package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"speedprobe/internal/core/domain"
	"speedprobe/pkg/ui"
)

var (
	uploadSizeMB   int
	uploadAttempts int
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:     "upload",
	Aliases: []string{"up", "ul"},
	Short:   "Measure upload throughput (alias: up, ul)",
	Long: `Upload a zero-filled test payload to the server and time the
transfer on the client side. A scratch file of the requested size is
created in the temp directory for the duration of the test and removed
afterwards, success or not.

The test runs multiple attempts and keeps the fastest. Timed transfers
are never retried.

Examples:
  speedprobe upload                # configured size, best of 3
  speedprobe upload --size 20      # 20 MB payload`,
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().IntVar(&uploadSizeMB, "size", 0, "Payload size in MB (default from config)")
	uploadCmd.Flags().IntVar(&uploadAttempts, "attempts", 0, "Number of attempts, best is kept")
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	req := transferRequestFromConfig(domain.DirectionUpload)
	if uploadSizeMB > 0 {
		req.SizeMB = uploadSizeMB
	}
	if uploadAttempts > 0 {
		req.Attempts = uploadAttempts
	}

	fmt.Println(ui.FormatRocket(fmt.Sprintf("Uploading %d MB to %s (%d attempts)...",
		req.SizeMB, apiClient.BaseURL(), req.Attempts)))
	fmt.Println()

	summary, err := uploadService.Execute(ctx, req)
	if err != nil {
		return fmt.Errorf("upload test failed: %w", err)
	}

	if useJSON() {
		return printJSON(summary)
	}

	printTransferSummary(summary)
	return nil
}
