// Package exporter writes analysis results to CSV for downstream tools that
// cannot consume xlsx. Files are written with a UTF-8 BOM so Excel opens the
// Spanish headers correctly.
package exporter
