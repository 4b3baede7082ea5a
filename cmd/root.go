package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"speedprobe/internal/adapters/api"
	"speedprobe/internal/adapters/history"
	"speedprobe/internal/core/services"
	"speedprobe/pkg/appdir"
	"speedprobe/pkg/config"
	"speedprobe/pkg/ui"
)

var (
	// Global app state
	appDir    *appdir.AppDir
	appConfig *config.Config
	apiClient *api.Client

	// Services
	pingService     *services.PingService
	downloadService *services.DownloadService
	uploadService   *services.UploadService
	reportService   *services.ReportService

	// Repositories
	historyRepo *history.FileRepository
)

var (
	serverName string
	serverURL  string
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "speedprobe",
	Short: "speedprobe - a network speed test client",
	Long: ui.StyleTitle.Render("speedprobe") + " - Network Speed Test Client\n\n" +
		"Measure latency, download and upload throughput against a\n" +
		"speed-test API server, keep a history of your runs, and watch\n" +
		"your connection over time.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVarP(&serverName, "server", "s", "", "Named server from config to test against")
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "", "Explicit server URL, overrides --server and config")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Skip initialization for commands that run before setup
	switch cmd.Name() {
	case "init", "version":
		return nil
	}

	d, err := appdir.New()
	if err != nil {
		return fmt.Errorf("failed to locate data directory: %w", err)
	}
	appDir = d

	if !appDir.Exists() {
		fmt.Println(ui.FormatError("Data directory not initialized"))
		fmt.Println(ui.FormatInfo("Run 'speedprobe init' to set it up"))
		os.Exit(1)
	}

	cfg, err := config.Load(appDir.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg

	ui.SetTheme(appConfig.ColorTheme)

	baseURL, err := resolveBaseURL()
	if err != nil {
		return err
	}

	apiClient = api.New(baseURL,
		api.WithTimeout(appConfig.Timeout()),
		api.WithUserAgent(appConfig.UserAgent),
	)

	// Initialize repositories
	historyRepo = history.NewFileRepository(appDir.HistoryPath)

	// Initialize services
	pingService = services.NewPingService(apiClient)
	downloadService = services.NewDownloadService(apiClient)
	uploadService = services.NewUploadService(apiClient)
	reportService = services.NewReportService(apiClient, historyRepo)

	return nil
}

// resolveBaseURL picks the server to test against: --url wins, then
// --server, then the configured default.
func resolveBaseURL() (string, error) {
	if serverURL != "" {
		return serverURL, nil
	}
	return appConfig.ResolveServer(serverName)
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
