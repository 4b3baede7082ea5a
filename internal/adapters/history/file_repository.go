package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"speedprobe/internal/core/domain"
)

// FileRepository persists test reports as one JSON file each, named by
// their UTC timestamp so lexical order is chronological order.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a repository rooted at dir.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Save persists a report.
func (r *FileRepository) Save(ctx context.Context, report *domain.Report) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	path := filepath.Join(r.dir, report.Filename())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// List returns all saved reports, newest first. Unreadable files are
// skipped so one corrupt entry cannot hide the rest of the history.
func (r *FileRepository) List(ctx context.Context) ([]domain.Report, error) {
	files, err := r.reportFiles()
	if err != nil {
		return nil, err
	}

	reports := make([]domain.Report, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var report domain.Report
		if err := json.Unmarshal(data, &report); err != nil {
			continue
		}
		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Timestamp.After(reports[j].Timestamp)
	})
	return reports, nil
}

// Prune deletes the oldest reports until at most keep remain.
func (r *FileRepository) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	files, err := r.reportFiles()
	if err != nil {
		return 0, err
	}
	if len(files) <= keep {
		return 0, nil
	}

	// Filenames are timestamp-ordered, oldest first after sorting
	sort.Strings(files)
	toRemove := files[:len(files)-keep]

	removed := 0
	for _, path := range toRemove {
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed++
	}
	return removed, nil
}

// Clear removes every saved report.
func (r *FileRepository) Clear(ctx context.Context) (int, error) {
	files, err := r.reportFiles()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, path := range files {
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed++
	}
	return removed, nil
}

func (r *FileRepository) reportFiles() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(r.dir, entry.Name()))
	}
	return files, nil
}
