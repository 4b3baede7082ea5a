package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDir holds the managed storage locations for speedprobe.
type AppDir struct {
	RootPath    string
	HistoryPath string
	ChartsPath  string
	ConfigPath  string
}

// New resolves XDG-compliant paths for the data directory and config file.
func New() (*AppDir, error) {
	root, err := dataRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to determine data directory: %w", err)
	}
	configPath, err := configFile()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	return &AppDir{
		RootPath:    root,
		HistoryPath: filepath.Join(root, "history"),
		ChartsPath:  filepath.Join(root, "charts"),
		ConfigPath:  configPath,
	}, nil
}

func dataRoot() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "speedprobe"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "speedprobe"), nil
	}

	return filepath.Join(home, ".local", "share", "speedprobe"), nil
}

func configFile() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "speedprobe", "config.yaml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "speedprobe-config", "config.yaml"), nil
	}

	return filepath.Join(home, ".config", "speedprobe", "config.yaml"), nil
}

// Initialize creates the directory structure if it doesn't exist.
func (a *AppDir) Initialize() error {
	for _, dir := range []string{a.RootPath, a.HistoryPath, a.ChartsPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Exists checks if the data directory has been initialized.
func (a *AppDir) Exists() bool {
	info, err := os.Stat(a.RootPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ChartPath returns the full path for a rendered chart file.
func (a *AppDir) ChartPath(filename string) string {
	return filepath.Join(a.ChartsPath, filename)
}
