package cmd

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"speedprobe/internal/core/domain"
	"speedprobe/pkg/ui"
)

var (
	chartOutput string
	chartLimit  int
	chartOpen   bool
)

// chartCmd represents the chart command
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render history as an interactive HTML chart",
	Long: `Render saved test reports as an interactive HTML chart.

Two charts are produced on one page: throughput (download and upload)
and latency, both over time. The page is written to the charts
directory unless --output is given.

Examples:
  speedprobe chart              # chart all history
  speedprobe chart -n 30 --open # last 30 reports, open in browser`,
	RunE: runChart,
}

func init() {
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "Output HTML file path")
	chartCmd.Flags().IntVarP(&chartLimit, "limit", "n", 0, "Chart at most this many recent reports")
	chartCmd.Flags().BoolVar(&chartOpen, "open", false, "Open the chart in the default browser")
}

func runChart(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	reports, err := historyRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(reports) == 0 {
		fmt.Println(ui.FormatWarning("No saved reports to chart"))
		fmt.Println(ui.FormatMuted("Run 'speedprobe run' to record your first test"))
		return nil
	}

	if chartLimit > 0 && len(reports) > chartLimit {
		reports = reports[:chartLimit]
	}

	// History lists newest first, charts read left to right
	chronological := make([]domain.Report, len(reports))
	for i, r := range reports {
		chronological[len(reports)-1-i] = r
	}

	outPath := chartOutput
	if outPath == "" {
		outPath = appDir.ChartPath("history.html")
	}

	page := components.NewPage()
	page.PageTitle = "speedprobe history"
	page.AddCharts(
		buildThroughputChart(chronological),
		buildLatencyChart(chronological),
	)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Chart written (%d reports)", len(chronological))))
	fmt.Println(ui.RenderKeyValue("Path", outPath))

	if chartOpen {
		if err := openInBrowser(outPath); err != nil {
			fmt.Println(ui.FormatWarning("Could not open browser: " + err.Error()))
		}
	}
	return nil
}

func buildThroughputChart(reports []domain.Report) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Throughput", Subtitle: "Best attempt per direction, Mbps"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Mbps"}),
	)

	labels := make([]string, len(reports))
	download := make([]opts.LineData, len(reports))
	upload := make([]opts.LineData, len(reports))
	for i, r := range reports {
		labels[i] = r.Timestamp.Local().Format("01-02 15:04")
		download[i] = opts.LineData{Value: r.Summary.DownloadSpeedMbps}
		upload[i] = opts.LineData{Value: r.Summary.UploadSpeedMbps}
	}

	line.SetXAxis(labels).
		AddSeries("Download", download).
		AddSeries("Upload", upload).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func buildLatencyChart(reports []domain.Report) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Latency", Subtitle: "Average round trip, ms"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms"}),
	)

	labels := make([]string, len(reports))
	latency := make([]opts.LineData, len(reports))
	for i, r := range reports {
		labels[i] = r.Timestamp.Local().Format("01-02 15:04")
		latency[i] = opts.LineData{Value: r.Summary.LatencyMs}
	}

	line.SetXAxis(labels).
		AddSeries("Latency", latency).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}
