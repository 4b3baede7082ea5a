package appdir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_XDGPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	a, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.RootPath != filepath.Join("/tmp/xdg-data", "speedprobe") {
		t.Errorf("unexpected root: %s", a.RootPath)
	}
	if a.HistoryPath != filepath.Join(a.RootPath, "history") {
		t.Errorf("unexpected history path: %s", a.HistoryPath)
	}
	if a.ConfigPath != filepath.Join("/tmp/xdg-config", "speedprobe", "config.yaml") {
		t.Errorf("unexpected config path: %s", a.ConfigPath)
	}
}

func TestInitializeAndExists(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	a, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Exists() {
		t.Fatal("expected Exists to be false before Initialize")
	}

	if err := a.Initialize(); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	if !a.Exists() {
		t.Error("expected Exists to be true after Initialize")
	}

	for _, dir := range []string{a.RootPath, a.HistoryPath, a.ChartsPath} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("expected directory %s: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("expected %s to be a directory", dir)
		}
	}
}

func TestChartPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	a, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(a.ChartsPath, "latency.html")
	if got := a.ChartPath("latency.html"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
