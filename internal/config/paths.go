package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Paths contains all resolved application paths. This is the single source of
// truth for file locations; nothing else joins path segments for the input
// files.
type Paths struct {
	DataDir    string
	ReportsDir string
	LogsDir    string

	// The three input tables
	SalesFile    string
	PaymentsFile string
	StockFile    string
}

// NewPaths resolves all application paths from the configured base
// directories. Relative directories are interpreted against the current
// working directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	dataDir, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data dir %q: %w", cfg.DataDir, err)
	}

	reportsDir, err := filepath.Abs(cfg.ReportsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reports dir %q: %w", cfg.ReportsDir, err)
	}

	logsDir, err := filepath.Abs(cfg.LogsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve logs dir %q: %w", cfg.LogsDir, err)
	}

	return &Paths{
		DataDir:      dataDir,
		ReportsDir:   reportsDir,
		LogsDir:      logsDir,
		SalesFile:    filepath.Join(dataDir, SalesFileName),
		PaymentsFile: filepath.Join(dataDir, PaymentsFileName),
		StockFile:    filepath.Join(dataDir, StockFileName),
	}, nil
}

// InputFiles returns the three input file paths in load order
// (sales, payments, stock).
func (p *Paths) InputFiles() []string {
	return []string{p.SalesFile, p.PaymentsFile, p.StockFile}
}

// MissingInputFiles returns the base names of input files that do not exist.
// An empty result means all three inputs are present.
func (p *Paths) MissingInputFiles() []string {
	var missing []string
	for _, path := range p.InputFiles() {
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, filepath.Base(path))
		}
	}
	return missing
}

// ReportFile returns a timestamped path for a generated report.
func (p *Paths) ReportFile(now time.Time) string {
	return filepath.Join(p.ReportsDir, now.Format(ReportFilePattern))
}

// SummaryCSVFile returns a timestamped path for a CSV analysis export.
func (p *Paths) SummaryCSVFile(now time.Time) string {
	return filepath.Join(p.ReportsDir, now.Format(SummaryCSVPattern))
}

// EnsureDirs creates the output directories if they do not exist. The data
// directory is deliberately not created: missing inputs must surface as a
// not-found error, not an empty directory.
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
