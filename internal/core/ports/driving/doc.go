// Package driving defines the service interfaces offered to inbound
// adapters such as the HTTP server.
package driving
