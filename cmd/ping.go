package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"speedprobe/pkg/ui"
)

var (
	pingCount      int
	pingIntervalMS int
	pingVerbose    bool
)

// pingCmd represents the ping command
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Measure latency to the target server",
	Long: `Issue repeated requests against the ping endpoint and summarize
round-trip statistics: min, average, max, jitter and p90.

Individual failed pings count as packet loss; the command only fails
when every ping fails.

Examples:
  speedprobe ping                 # 10 pings with configured interval
  speedprobe ping -c 30 -v        # 30 pings with per-ping breakdown`,
	RunE: runPing,
}

func init() {
	pingCmd.Flags().IntVarP(&pingCount, "count", "c", 0, "Number of pings (default from config)")
	pingCmd.Flags().IntVar(&pingIntervalMS, "interval", 0, "Pause between pings in milliseconds")
	pingCmd.Flags().BoolVarP(&pingVerbose, "verbose", "v", false, "Show per-ping phase breakdown")
}

func runPing(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	req := pingRequestFromConfig()
	if pingCount > 0 {
		req.Count = pingCount
	}
	if pingIntervalMS > 0 {
		req.Interval = time.Duration(pingIntervalMS) * time.Millisecond
	}
	req.KeepSamples = pingVerbose || useJSON()

	fmt.Println(ui.FormatRocket(fmt.Sprintf("Pinging %s (%d times)...", apiClient.BaseURL(), req.Count)))
	fmt.Println()

	summary, err := pingService.Execute(ctx, req)
	if err != nil {
		return fmt.Errorf("latency test failed: %w", err)
	}

	if useJSON() {
		return printJSON(summary)
	}

	printPingSummary(summary)
	if pingVerbose {
		printPingSamples(summary.Samples)
	}
	return nil
}
