package domain

const (
	// DefaultMaxDepth is the default traversal depth bound.
	DefaultMaxDepth = 3

	// DefaultMaxFileSize is the default per-file body size ceiling in bytes.
	DefaultMaxFileSize = 100_000

	// MaxDepthCeiling caps the depth a request may ask for.
	MaxDepthCeiling = 10
)

// RenderOptions controls which sections appear in a generated document.
// Supplied per request; zero values are replaced by the defaults at the
// HTTP boundary.
type RenderOptions struct {
	IncludeReadme    bool     `json:"includeReadme"`
	IncludeStructure bool     `json:"includeStructure"`
	IncludeFiles     bool     `json:"includeFiles"`
	FileExtensions   []string `json:"fileExtensions"`
	MaxDepth         int      `json:"maxDepth"`
	MaxFileSize      int64    `json:"maxFileSize"`
}

// DefaultRenderOptions returns the per-request defaults: all sections
// enabled, no extension filter, depth 3, 100 kB body ceiling.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		IncludeReadme:    true,
		IncludeStructure: true,
		IncludeFiles:     true,
		FileExtensions:   nil,
		MaxDepth:         DefaultMaxDepth,
		MaxFileSize:      DefaultMaxFileSize,
	}
}

// Normalize clamps out-of-range values into their valid ranges.
func (o *RenderOptions) Normalize() {
	if o.MaxDepth < 0 {
		o.MaxDepth = 0
	}
	if o.MaxDepth > MaxDepthCeiling {
		o.MaxDepth = MaxDepthCeiling
	}
	if o.MaxFileSize < 0 {
		o.MaxFileSize = 0
	}
}
