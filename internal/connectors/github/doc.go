// Package github adapts the GitHub REST API to the driven.RepoHost port.
//
// The adapter comprises:
//
//   - Client: go-github wrapper handling authentication and rate limiting
//   - Host: maps Contents API responses onto the domain tree types
//   - RateLimiter: dual-strategy throttling (proactive token bucket plus
//     reactive X-RateLimit header tracking)
//
// Authentication uses an optional personal access token. Authenticated
// clients get 5,000 requests per hour; without a token GitHub allows 60,
// which is enough for light use against small public repositories.
//
// Listing order is whatever the Contents API returns; it is passed through
// untouched because document ordering is derived from it.
package github
