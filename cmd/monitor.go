package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"speedprobe/pkg/config"
	"speedprobe/pkg/ui"
)

var (
	monitorIntervalSec int
	monitorQuiet       bool
	monitorFull        bool
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch connection quality over time",
	Long: `Run latency tests on a fixed interval and print one summary line
per round, so degradation shows up as it happens.

With --full, each round runs the complete test suite (latency plus
transfers) and saves reports to history like 'speedprobe run' does.
Edits to the config file are picked up live without restarting.

Use --quiet to print only rounds that look unhealthy.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().IntVar(&monitorIntervalSec, "interval", 0, "Seconds between rounds (default from config)")
	monitorCmd.Flags().BoolVarP(&monitorQuiet, "quiet", "q", false, "Only print unhealthy rounds")
	monitorCmd.Flags().BoolVar(&monitorFull, "full", false, "Run the full test suite each round")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	interval := appConfig.MonitorInterval()
	if monitorIntervalSec > 0 {
		interval = time.Duration(monitorIntervalSec) * time.Second
	}

	// Watch the config file so edits apply without a restart
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(appDir.ConfigPath)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	if !monitorQuiet {
		fmt.Println(ui.FormatRocket("Monitoring " + apiClient.BaseURL()))
		fmt.Println(ui.FormatMuted(fmt.Sprintf("Every %s, config reloads on change", interval)))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Debounce config reloads, editors fire several events per save
	var debounceTimer *time.Timer
	debounceDuration := 500 * time.Millisecond

	doReload := func() {
		cfg, err := config.Load(appDir.ConfigPath)
		if err != nil {
			log.Printf("Config reload error: %v", err)
			return
		}
		appConfig = cfg
		if !monitorQuiet {
			fmt.Println(ui.FormatInfo("Config reloaded"))
		}
	}

	// First round runs immediately, then on the ticker
	monitorRound(ctx)

	for {
		select {
		case <-ticker.C:
			monitorRound(ctx)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(appDir.ConfigPath) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, doReload)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-sigCh:
			if !monitorQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Monitor stopped"))
			}
			return nil
		}
	}
}

// monitorRound runs one measurement round and prints a summary line.
func monitorRound(ctx context.Context) {
	now := time.Now().Format("15:04:05")

	if monitorFull {
		req := reportRequestFromConfig()
		report, err := reportService.Execute(ctx, req)
		if err != nil && report == nil {
			fmt.Printf("%s  %s\n", ui.FormatMuted(now), ui.FormatError(err.Error()))
			return
		}
		healthy := report.Summary.LatencyMs < 150 && report.Ping.Loss() == 0
		if monitorQuiet && healthy {
			return
		}
		fmt.Printf("%s  %s %s  %s %s  ping %s\n",
			ui.FormatMuted(now),
			ui.IconDown, ui.FormatMbps(report.Summary.DownloadSpeedMbps),
			ui.IconUp, ui.FormatMbps(report.Summary.UploadSpeedMbps),
			ui.FormatLatency(report.Summary.LatencyMs))
		return
	}

	summary, err := pingService.Execute(ctx, pingRequestFromConfig())
	if err != nil {
		fmt.Printf("%s  %s\n", ui.FormatMuted(now), ui.FormatError(err.Error()))
		return
	}

	healthy := summary.AvgMs < 150 && summary.Loss() == 0
	if monitorQuiet && healthy {
		return
	}

	fmt.Printf("%s  ping %s  jitter %.1f ms  loss %.0f%%\n",
		ui.FormatMuted(now),
		ui.FormatLatency(summary.AvgMs),
		summary.JitterMs,
		summary.Loss()*100)
}
