package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/custodia-labs/repopress/internal/core/domain"
	"github.com/custodia-labs/repopress/internal/core/ports/driven"
)

// TreeBuilder walks a repository host directory-by-directory into an
// in-memory tree, preserving the host's listing order.
type TreeBuilder struct {
	host driven.RepoHost
	log  *zap.Logger
}

// NewTreeBuilder creates a tree builder over the given host.
func NewTreeBuilder(host driven.RepoHost, log *zap.Logger) *TreeBuilder {
	return &TreeBuilder{host: host, log: log}
}

// dirWork is one pending directory expansion. The traversal uses an
// explicit stack so repository shape never translates into call-stack
// depth.
type dirWork struct {
	node  *domain.TreeNode
	path  string
	depth int
}

// Build returns the tree rooted at path, descending at most maxDepth
// directory levels below it. Entries deeper than the bound are omitted
// without a marker. A failed listing yields an empty subtree flagged
// FetchFailed and never aborts sibling traversal; the failure is logged
// and otherwise swallowed.
func (b *TreeBuilder) Build(ctx context.Context, ref domain.RepoRef, path, gitRef string, maxDepth int) []domain.TreeNode {
	root := domain.TreeNode{Type: domain.EntryDir, Path: path}
	stack := []dirWork{{node: &root, path: path, depth: 0}}

	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := b.host.ListDir(ctx, ref, w.path, gitRef)
		if err != nil {
			w.node.FetchFailed = true
			b.log.Warn("directory listing failed",
				zap.String("repo", ref.String()),
				zap.String("path", w.path),
				zap.Error(err))
			continue
		}

		w.node.Children = make([]domain.TreeNode, 0, len(entries))
		for _, e := range entries {
			w.node.Children = append(w.node.Children, domain.NodeFromEntry(e))
		}

		if w.depth+1 > maxDepth {
			continue
		}
		// Push in reverse so directories expand in listing order. Children
		// are already attached in order, so expansion order only affects
		// the sequence of host calls.
		for i := len(w.node.Children) - 1; i >= 0; i-- {
			c := &w.node.Children[i]
			if c.IsDir() {
				stack = append(stack, dirWork{node: c, path: c.Path, depth: w.depth + 1})
			}
		}
	}

	return root.Children
}
