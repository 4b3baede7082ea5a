package cmd

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"speedprobe/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your speedprobe setup",
	Long: `Diagnose issues with your speedprobe setup.

Checks for:
  - Data directory and config file integrity
  - Target server URL validity
  - DNS resolution and TCP reachability of the server
  - The ping endpoint responding`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println(ui.FormatTitle("🏥 speedprobe Doctor"))
	fmt.Println()

	// 1. Local setup
	checkStep("Data Directory", func() error {
		if !appDir.Exists() {
			return fmt.Errorf("not found at %s", appDir.RootPath)
		}
		return nil
	})

	checkStep("History Directory", func() error {
		if _, err := os.Stat(appDir.HistoryPath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s", appDir.HistoryPath)
		}
		return nil
	})

	checkStep("Configuration File", func() error {
		if _, err := os.Stat(appDir.ConfigPath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s (using defaults)", appDir.ConfigPath)
		}
		return nil
	})

	// 2. Target server
	var host, port string
	checkStep("Server URL", func() error {
		parsed, err := url.Parse(apiClient.BaseURL())
		if err != nil {
			return fmt.Errorf("unparseable: %v", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("unsupported scheme %q", parsed.Scheme)
		}
		host = parsed.Hostname()
		port = parsed.Port()
		if port == "" {
			port = "80"
			if parsed.Scheme == "https" {
				port = "443"
			}
		}
		return nil
	})

	checkStep("DNS Resolution", func() error {
		if host == "" {
			return fmt.Errorf("skipped, no valid host")
		}
		if _, err := net.LookupHost(host); err != nil {
			return fmt.Errorf("cannot resolve %s: %v", host, err)
		}
		return nil
	})

	checkStep("TCP Reachability", func() error {
		if host == "" {
			return fmt.Errorf("skipped, no valid host")
		}
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port), 5*time.Second)
		if err != nil {
			return fmt.Errorf("cannot connect to %s:%s: %v", host, port, err)
		}
		conn.Close()
		return nil
	})

	checkStep("Ping Endpoint", func() error {
		sample, err := apiClient.Ping(getContext())
		if err != nil {
			return fmt.Errorf("not responding: %v", err)
		}
		fmt.Printf("    %s\n", ui.StyleMuted.Render(fmt.Sprintf("round trip %s", sample.RTT.Round(time.Millisecond))))
		return nil
	})

	// 3. Environment
	checkStep("EDITOR Variable", func() error {
		if os.Getenv("EDITOR") == "" {
			return fmt.Errorf("not set (using fallback 'vi')")
		}
		return nil
	})
}

// checkStep runs a check function and prints the result nicely
func checkStep(name string, check func() error) {
	err := check()
	if err == nil {
		fmt.Printf("%s %s\n", ui.FormatSuccess("✔"), name)
	} else {
		fmt.Printf("%s %s\n", ui.FormatError("✘"), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	}
}
