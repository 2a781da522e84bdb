// Package driven defines the capability interfaces the core depends on:
// the repository host, the document renderer, and the syntax highlighter.
// Adapters under internal/connectors and internal/render implement them.
package driven
