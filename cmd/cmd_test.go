package cmd

import (
	"testing"

	"speedprobe/internal/core/ports/mocks"
	"speedprobe/internal/core/services"
)

// TestCommandStructure verifies that all commands are properly registered
func TestCommandStructure(t *testing.T) {
	commands := []string{
		"init", "info", "ping", "download", "upload", "network",
		"run", "history", "chart", "monitor", "dashboard", "server",
		"doctor", "clean", "config", "version",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{cmdName})
			if err != nil {
				t.Errorf("Command '%s' not found: %v", cmdName, err)
			}
			if cmd == nil {
				t.Errorf("Command '%s' is nil", cmdName)
			}
			if cmd.Use == "" {
				t.Errorf("Command '%s' has no Use field", cmdName)
			}
		})
	}
}

// TestRootCommandExists verifies the root command is properly configured
func TestRootCommandExists(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("Root command is nil")
	}

	if rootCmd.Use != "speedprobe" {
		t.Errorf("Expected root command Use to be 'speedprobe', got '%s'", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Root command Short description is empty")
	}
}

// TestCommandsHaveHelp verifies all commands have help text
func TestCommandsHaveHelp(t *testing.T) {
	commands := rootCmd.Commands()

	if len(commands) == 0 {
		t.Fatal("No commands registered")
	}

	for _, cmd := range commands {
		t.Run(cmd.Name(), func(t *testing.T) {
			if cmd.Short == "" {
				t.Errorf("Command '%s' has no Short description", cmd.Name())
			}
		})
	}
}

// TestServiceInitialization verifies services can be initialized with mocks
func TestServiceInitialization(t *testing.T) {
	prober := mocks.NewMockProber()

	if svc := services.NewPingService(prober); svc == nil {
		t.Error("PingService is nil")
	}
	if svc := services.NewDownloadService(prober); svc == nil {
		t.Error("DownloadService is nil")
	}
	if svc := services.NewUploadService(prober); svc == nil {
		t.Error("UploadService is nil")
	}
	if svc := services.NewReportService(prober, mocks.NewMockHistoryRepository()); svc == nil {
		t.Error("ReportService is nil")
	}
}

// TestSubcommands verifies specific subcommands exist
func TestSubcommands(t *testing.T) {
	tests := []struct {
		parent     string
		subcommand string
	}{
		{"server", "add"},
		{"server", "remove"},
		{"server", "use"},
	}

	for _, tt := range tests {
		t.Run(tt.parent+"_"+tt.subcommand, func(t *testing.T) {
			parentCmd, _, err := rootCmd.Find([]string{tt.parent})
			if err != nil {
				t.Fatalf("Parent command '%s' not found: %v", tt.parent, err)
			}

			found := false
			for _, cmd := range parentCmd.Commands() {
				if cmd.Name() == tt.subcommand {
					found = true
					break
				}
			}

			if !found {
				t.Errorf("Subcommand '%s' not found under '%s'", tt.subcommand, tt.parent)
			}
		})
	}
}

// TestFlagsExist verifies important flags are registered
func TestFlagsExist(t *testing.T) {
	tests := []struct {
		command  string
		flagName string
	}{
		{"ping", "count"},
		{"ping", "interval"},
		{"ping", "verbose"},
		{"download", "size"},
		{"download", "attempts"},
		{"upload", "size"},
		{"upload", "attempts"},
		{"run", "skip-network"},
		{"run", "no-save"},
		{"run", "copy"},
		{"history", "limit"},
		{"chart", "output"},
		{"monitor", "interval"},
		{"monitor", "full"},
		{"clean", "keep"},
	}

	for _, tt := range tests {
		t.Run(tt.command+"_"+tt.flagName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.command})
			if err != nil {
				t.Fatalf("Command '%s' not found: %v", tt.command, err)
			}

			flag := cmd.Flags().Lookup(tt.flagName)
			if flag == nil {
				t.Errorf("Flag '--%s' not found on command '%s'", tt.flagName, tt.command)
			}
		})
	}
}

// TestPersistentFlags verifies global flags are registered on the root
func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"server", "url", "json"} {
		t.Run(name, func(t *testing.T) {
			if rootCmd.PersistentFlags().Lookup(name) == nil {
				t.Errorf("Persistent flag '--%s' not found", name)
			}
		})
	}
}

// TestCommandAliases verifies command aliases resolve
func TestCommandAliases(t *testing.T) {
	tests := []struct {
		alias   string
		command string
	}{
		{"down", "download"},
		{"up", "upload"},
		{"net", "network"},
		{"test", "run"},
		{"hist", "history"},
		{"dash", "dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.alias})
			if err != nil {
				t.Errorf("Alias '%s' not found: %v", tt.alias, err)
				return
			}
			if cmd.Name() != tt.command {
				t.Errorf("Alias '%s' resolved to '%s', want '%s'", tt.alias, cmd.Name(), tt.command)
			}
		})
	}
}
