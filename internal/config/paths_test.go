package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	dir := t.TempDir()

	paths, err := NewPaths(PathsConfig{
		DataDir:    dir,
		ReportsDir: filepath.Join(dir, "reports"),
		LogsDir:    filepath.Join(dir, "logs"),
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "F_ventas_sap.xlsx"), paths.SalesFile)
	assert.Equal(t, filepath.Join(dir, "F_pagos_clientes.xlsx"), paths.PaymentsFile)
	assert.Equal(t, filepath.Join(dir, "MM_stock_actual.xlsx"), paths.StockFile)
	assert.Len(t, paths.InputFiles(), 3)
}

func TestPaths_MissingInputFiles(t *testing.T) {
	dir := t.TempDir()
	paths, err := NewPaths(PathsConfig{DataDir: dir, ReportsDir: dir, LogsDir: dir})
	require.NoError(t, err)

	// Nothing present yet: all three reported missing.
	missing := paths.MissingInputFiles()
	assert.ElementsMatch(t,
		[]string{"F_ventas_sap.xlsx", "F_pagos_clientes.xlsx", "MM_stock_actual.xlsx"},
		missing)

	// Create two of the three.
	require.NoError(t, os.WriteFile(paths.SalesFile, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(paths.StockFile, []byte("x"), 0644))

	missing = paths.MissingInputFiles()
	assert.Equal(t, []string{"F_pagos_clientes.xlsx"}, missing)

	// All present.
	require.NoError(t, os.WriteFile(paths.PaymentsFile, []byte("x"), 0644))
	assert.Empty(t, paths.MissingInputFiles())
}

func TestPaths_ReportFile(t *testing.T) {
	paths, err := NewPaths(PathsConfig{DataDir: ".", ReportsDir: "/out/reports", LogsDir: "logs"})
	require.NoError(t, err)

	ts := time.Date(2024, 1, 15, 15, 30, 45, 0, time.UTC)
	assert.Equal(t, filepath.Join("/out/reports", "Reporte_SAP_20240115_153045.xlsx"), paths.ReportFile(ts))
	assert.Equal(t, filepath.Join("/out/reports", "Resumen_SAP_20240115_153045.csv"), paths.SummaryCSVFile(ts))
}

func TestPaths_EnsureDirs(t *testing.T) {
	dir := t.TempDir()
	paths, err := NewPaths(PathsConfig{
		DataDir:    filepath.Join(dir, "data"),
		ReportsDir: filepath.Join(dir, "reports"),
		LogsDir:    filepath.Join(dir, "logs"),
	})
	require.NoError(t, err)

	require.NoError(t, paths.EnsureDirs())

	assert.DirExists(t, paths.ReportsDir)
	assert.DirExists(t, paths.LogsDir)
	// Data dir must not be created implicitly.
	assert.NoDirExists(t, paths.DataDir)
}
