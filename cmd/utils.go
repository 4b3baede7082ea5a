package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"speedprobe/internal/core/domain"
	"speedprobe/internal/core/services"
	"speedprobe/pkg/ui"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// useJSON reports whether output should be machine readable, honoring
// the --json flag over the configured output format.
func useJSON() bool {
	if jsonOutput {
		return true
	}
	return appConfig != nil && appConfig.OutputFormat == "json"
}

// pingRequestFromConfig builds the default latency test parameters.
func pingRequestFromConfig() services.PingRequest {
	return services.PingRequest{
		Count:    appConfig.PingCount,
		Interval: appConfig.PingInterval(),
	}
}

// transferRequestFromConfig builds the default transfer test parameters
// for the given direction.
func transferRequestFromConfig(dir domain.TransferDirection) services.TransferRequest {
	sizeMB := appConfig.DownloadSizeMB
	if dir == domain.DirectionUpload {
		sizeMB = appConfig.UploadSizeMB
	}
	return services.TransferRequest{
		SizeMB:   sizeMB,
		Attempts: appConfig.Attempts,
		Pause:    appConfig.AttemptPause(),
	}
}

// reportRequestFromConfig builds the default full test parameters.
func reportRequestFromConfig() services.ReportRequest {
	return services.ReportRequest{
		Ping:     pingRequestFromConfig(),
		Download: transferRequestFromConfig(domain.DirectionDownload),
		Upload:   transferRequestFromConfig(domain.DirectionUpload),
		Save:     appConfig.SaveHistory,
	}
}

// printPingSummary renders a latency test result.
func printPingSummary(summary *domain.PingSummary) {
	fmt.Println(ui.FormatTitle(ui.IconPing + " Latency"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Pings", fmt.Sprintf("%d sent, %d received (%.0f%% loss)",
		summary.Sent, summary.Received, summary.Loss()*100)))
	fmt.Println(ui.RenderKeyValue("Average", ui.FormatLatency(summary.AvgMs)))
	fmt.Println(ui.RenderKeyValue("Min / Max", fmt.Sprintf("%.1f ms / %.1f ms", summary.MinMs, summary.MaxMs)))
	fmt.Println(ui.RenderKeyValue("Jitter", fmt.Sprintf("%.1f ms", summary.JitterMs)))
	fmt.Println(ui.RenderKeyValue("P90", fmt.Sprintf("%.1f ms", summary.P90Ms)))
}

// printPingSamples renders the per-ping phase breakdown table.
func printPingSamples(samples []domain.PingSample) {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "#", Width: 3, Align: "right"},
		{Header: "RTT", Width: 10, Align: "right"},
		{Header: "DNS", Width: 10, Align: "right"},
		{Header: "Connect", Width: 10, Align: "right"},
		{Header: "Wait", Width: 10, Align: "right"},
	})
	for i, s := range samples {
		table.AddRow([]string{
			fmt.Sprintf("%d", i+1),
			formatDurationMs(s.RTT),
			formatDurationMs(s.DNSLookup),
			formatDurationMs(s.Connect),
			formatDurationMs(s.ServerWait),
		})
	}
	fmt.Println()
	fmt.Print(table.Render())
}

// printTransferSummary renders a transfer test result.
func printTransferSummary(summary *domain.TransferSummary) {
	icon := ui.IconDown
	title := "Download"
	if summary.Direction == domain.DirectionUpload {
		icon = ui.IconUp
		title = "Upload"
	}

	fmt.Println(ui.FormatTitle(icon + " " + title))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Best", ui.FormatMbps(summary.Best.Mbps())))
	fmt.Println(ui.RenderKeyValue("Mean", fmt.Sprintf("%.2f Mbps", summary.MeanMbps)))
	fmt.Println(ui.RenderKeyValue("Size", fmt.Sprintf("%d MB x %d attempts", summary.SizeMB, len(summary.Attempts))))

	for i, a := range summary.Attempts {
		line := fmt.Sprintf("  attempt %d: %.2f Mbps in %s", i+1, a.Mbps(), a.Duration.Round(time.Millisecond))
		if a.Server != nil {
			line += fmt.Sprintf(" (server: %.2f Mbps)", a.Server.SpeedMbps)
		}
		fmt.Println(ui.FormatMuted(line))
	}
}

// printNetworkInfo renders the network information report.
func printNetworkInfo(info *domain.NetworkInfo) {
	fmt.Println(ui.FormatTitle(ui.IconNetwork + " Network"))
	fmt.Println()

	if info.Error != "" {
		fmt.Println(ui.FormatWarning("Server reported degraded info: " + info.Error))
		fmt.Println()
	}

	fmt.Println(ui.StyleHeader.Render("Server"))
	fmt.Println(ui.RenderKeyValue("  Hostname", info.Server.Hostname))
	fmt.Println(ui.RenderKeyValue("  IP", formatIP(info.Server.IP, info.Server.IsPrivate)))
	if info.Server.Docker {
		fmt.Println(ui.FormatMuted("  Running inside Docker"))
	}

	fmt.Println()
	fmt.Println(ui.StyleHeader.Render("Client"))
	fmt.Println(ui.RenderKeyValue("  IP", formatIP(info.Client.IP, info.Client.IsPrivate)))
	if info.Client.PublicIP != "" && info.Client.PublicIP != info.Client.IP {
		fmt.Println(ui.RenderKeyValue("  Public IP", info.Client.PublicIP))
	}
	if loc := info.Client.Location; loc != nil {
		parts := []string{}
		for _, p := range []string{loc.City, loc.Region, loc.Country} {
			if p != "" && p != "Unknown" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 0 {
			fmt.Println(ui.RenderKeyValue("  Location", strings.Join(parts, ", ")))
		}
		if loc.ISP != "" && loc.ISP != "Unknown" {
			fmt.Println(ui.RenderKeyValue("  ISP", loc.ISP))
		}
	}
}

// printReport renders a full test report.
func printReport(report *domain.Report) {
	fmt.Println(ui.FormatTitle("Speed Test Results"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Server", report.ServerURL))
	fmt.Println(ui.RenderKeyValue("Download", ui.FormatMbps(report.Summary.DownloadSpeedMbps)))
	fmt.Println(ui.RenderKeyValue("Upload", ui.FormatMbps(report.Summary.UploadSpeedMbps)))
	fmt.Println(ui.RenderKeyValue("Latency", ui.FormatLatency(report.Summary.LatencyMs)))
	if report.Ping != nil {
		fmt.Println(ui.RenderKeyValue("Jitter", fmt.Sprintf("%.1f ms", report.Ping.JitterMs)))
	}

	if report.Network != nil {
		fmt.Println()
		printNetworkInfo(report.Network)
	}
}

// openInBrowser opens a file with the OS default handler.
func openInBrowser(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	// Start() detaches so speedprobe can exit while the browser stays open
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}
	return nil
}

func formatDurationMs(d time.Duration) string {
	return fmt.Sprintf("%.1f ms", float64(d.Microseconds())/1000)
}

func formatIP(ip string, private bool) string {
	if private {
		return ip + ui.FormatMuted(" (private)")
	}
	return ip
}
