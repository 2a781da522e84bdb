// Package domain contains the core types for repository document
// generation: repository references, the in-memory file tree, render
// options, and the ordered document section stream consumed by renderers.
//
// All types are created per request and discarded once the document has
// been delivered; nothing here is shared across requests.
package domain
