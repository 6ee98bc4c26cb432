// Package http contains the HTTP handlers for the analysis API. Handlers
// translate requests into service calls and render JSON (or spreadsheet
// attachments) with RFC 7807 problem responses on failure.
package http
