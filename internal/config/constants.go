package config

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "SAVI"

// DefaultConfigFile is the conventional configuration file location.
const DefaultConfigFile = "config.yaml"

// Conventional input file names, resolved under PathsConfig.DataDir.
// These match the export names produced by the upstream SAP extraction.
const (
	SalesFileName    = "F_ventas_sap.xlsx"
	PaymentsFileName = "F_pagos_clientes.xlsx"
	StockFileName    = "MM_stock_actual.xlsx"
)

// ReportFilePattern is the time layout used to build generated report file
// names, e.g. Reporte_SAP_20240115_153045.xlsx.
const ReportFilePattern = "Reporte_SAP_20060102_150405.xlsx"

// SummaryCSVPattern is the time layout for CSV analysis exports.
const SummaryCSVPattern = "Resumen_SAP_20060102_150405.csv"
