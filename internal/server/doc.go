// Package server exposes the HTTP API: repository structure listings, PDF
// generation, a health probe, and a static catch-all for the bundled
// client application.
package server
