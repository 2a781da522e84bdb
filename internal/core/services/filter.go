package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/repopress/internal/core/domain"
)

// Policy decides which files appear in content listings and which file
// bodies are rendered. Directories are never filtered.
type Policy struct {
	maxFileSize int64
	exts        map[string]struct{}
}

// NewPolicy builds a selection policy from render options. Extensions are
// matched case-insensitively and may be configured with or without a
// leading dot; an empty list admits every file.
func NewPolicy(opts domain.RenderOptions) *Policy {
	p := &Policy{maxFileSize: opts.MaxFileSize}
	if len(opts.FileExtensions) > 0 {
		p.exts = make(map[string]struct{}, len(opts.FileExtensions))
		for _, e := range opts.FileExtensions {
			p.exts[strings.ToLower(strings.TrimPrefix(e, "."))] = struct{}{}
		}
	}
	return p
}

// Included reports whether the node appears in the table of contents and
// the per-file content sections. The structure listing ignores this
// policy entirely.
func (p *Policy) Included(n *domain.TreeNode) bool {
	if n.IsDir() {
		return true
	}
	if p.exts == nil {
		return true
	}
	_, ok := p.exts[strings.ToLower(domain.Extension(n.Name))]
	return ok
}

// BodyAllowed reports whether the file's content may be fetched and
// rendered. Oversized files get a placeholder instead; this check is
// independent of the extension filter.
func (p *Policy) BodyAllowed(n *domain.TreeNode) bool {
	return n.Size <= p.maxFileSize
}

// TooLargePlaceholder returns the substitute text for an oversized file,
// noting its size in kilobytes.
func (p *Policy) TooLargePlaceholder(n *domain.TreeNode) string {
	kb := (n.Size + 512) / 1024
	return fmt.Sprintf("File too large to display (%d KB)", kb)
}
