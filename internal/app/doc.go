// Package app wires the HTTP server together: configuration, logging, the
// analysis service, middleware and routes. It owns server lifecycle, from
// startup through graceful shutdown on interrupt.
package app
