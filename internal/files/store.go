package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ReportInfo represents one generated report file
type ReportInfo struct {
	Name    string    `json:"name"`
	Path    string    `json:"-"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Store provides access to the generated reports directory
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a report store over the given directory
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// List returns the generated report workbooks, newest first. A missing
// directory yields an empty list.
func (s *Store) List() ([]ReportInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read reports directory %s: %w", s.dir, err)
	}

	var reports []ReportInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		reports = append(reports, ReportInfo{
			Name:    name,
			Path:    filepath.Join(s.dir, name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].ModTime.Equal(reports[j].ModTime) {
			return reports[i].Name > reports[j].Name
		}
		return reports[i].ModTime.After(reports[j].ModTime)
	})

	return reports, nil
}

// Open opens a stored report by base name. Path separators in the name are
// rejected so callers cannot escape the reports directory.
func (s *Store) Open(name string) (*os.File, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid report name %q", name)
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open report %s: %w", name, err)
	}
	return f, nil
}

// Prune removes the oldest reports, keeping at most keep files. It returns
// the number of files removed.
func (s *Store) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	reports, err := s.List()
	if err != nil {
		return 0, err
	}
	if len(reports) <= keep {
		return 0, nil
	}

	removed := 0
	for _, report := range reports[keep:] {
		if err := os.Remove(report.Path); err != nil {
			s.logger.Warn("failed to prune report",
				slog.String("name", report.Name),
				slog.String("error", err.Error()))
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("pruned old reports",
			slog.Int("removed", removed),
			slog.Int("kept", keep))
	}

	return removed, nil
}
