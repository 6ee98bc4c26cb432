// Package shared provides common test helpers used across the codebase.
//
// The testutil subpackage provides:
//
//   - A buffered slog handler for asserting on structured log output
//   - Workbook fixture writers for the three input tables
//
// This package should only contain utilities used by multiple packages and
// must not carry business logic.
package shared
