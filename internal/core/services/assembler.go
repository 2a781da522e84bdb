package services

import (
	"context"
	"time"

	"github.com/custodia-labs/repopress/internal/core/domain"
	"github.com/custodia-labs/repopress/internal/core/ports/driven"
)

// Assembler turns a built tree plus README and repository metadata into
// the ordered document section stream. Sections go straight to the sink;
// nothing is materialized beyond the tree itself.
type Assembler struct {
	resolver *ContentResolver
	now      func() time.Time
}

// NewAssembler creates an assembler that resolves file bodies through the
// given resolver.
func NewAssembler(resolver *ContentResolver) *Assembler {
	return &Assembler{resolver: resolver, now: time.Now}
}

// Assemble emits the sections for one repository snapshot in their fixed
// order: cover, table of contents, README, structure listing, then
// per-file content. The table of contents, the structure listing, and the
// file sections all share one depth-first pre-order walk of the tree, so
// their ordering is mutually consistent. Only sink errors abort assembly.
func (a *Assembler) Assemble(
	ctx context.Context,
	info *domain.RepoInfo,
	readme *domain.Readme,
	tree []domain.TreeNode,
	gitRef string,
	opts domain.RenderOptions,
	sink driven.Sink,
) error {
	policy := NewPolicy(opts)

	cover := domain.Cover{
		Title:         info.Repo,
		Subtitle:      info.Owner,
		Description:   info.Description,
		DefaultBranch: info.DefaultBranch,
		Stars:         info.Stars,
		Forks:         info.Forks,
		GeneratedAt:   a.now(),
	}
	if err := sink.Emit(cover); err != nil {
		return err
	}
	if err := sink.Emit(domain.TOCHeader{}); err != nil {
		return err
	}

	if opts.IncludeReadme && readme != nil {
		entry := domain.TOCEntry{Label: readme.Name, Anchor: domain.AnchorReadme}
		if err := sink.Emit(entry); err != nil {
			return err
		}
	}

	if opts.IncludeStructure || opts.IncludeFiles {
		entry := domain.TOCEntry{Label: "Repository Structure", Anchor: domain.AnchorStructure}
		if err := sink.Emit(entry); err != nil {
			return err
		}
	}

	// TOC file lines: directories always listed, files only when the
	// extension filter admits them. The size ceiling does not apply here.
	if opts.IncludeFiles {
		err := walkTree(tree, 0, func(n *domain.TreeNode, depth int) error {
			if n.IsDir() {
				return sink.Emit(domain.TOCEntry{
					Label:       n.Name + "/",
					Indent:      depth + 1,
					IsDir:       true,
					Unavailable: n.FetchFailed,
				})
			}
			if !policy.Included(n) {
				return nil
			}
			return sink.Emit(domain.TOCEntry{
				Label:  n.Name,
				Anchor: domain.FileAnchor(n.Path),
				Indent: depth + 1,
			})
		})
		if err != nil {
			return err
		}
	}

	if opts.IncludeReadme && readme != nil {
		if err := sink.Emit(domain.ReadmeSection{Name: readme.Name, Content: readme.Content}); err != nil {
			return err
		}
	}

	// Structure listing shows every node regardless of the extension filter.
	if opts.IncludeStructure {
		if err := sink.Emit(domain.StructureHeader{}); err != nil {
			return err
		}
		err := walkTree(tree, 0, func(n *domain.TreeNode, depth int) error {
			label := n.Name
			if n.IsDir() {
				label += "/"
			}
			return sink.Emit(domain.StructureEntry{
				Label:       label,
				Indent:      depth,
				IsDir:       n.IsDir(),
				Unavailable: n.FetchFailed,
			})
		})
		if err != nil {
			return err
		}
	}

	if opts.IncludeFiles {
		err := walkTree(tree, 0, func(n *domain.TreeNode, _ int) error {
			if n.IsDir() || !policy.Included(n) {
				return nil
			}
			sec := domain.FileSection{Path: n.Path, Anchor: domain.FileAnchor(n.Path)}
			if policy.BodyAllowed(n) {
				sec.Body = a.resolver.Fetch(ctx, info.RepoRef, n.Path, gitRef)
			} else {
				sec.Body = policy.TooLargePlaceholder(n)
				sec.Placeholder = true
			}
			return sink.Emit(sec)
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// walkTree visits nodes depth-first pre-order: parents before children,
// children in listing order. Depth is bounded by the build-time depth
// limit, so recursion here stays shallow.
func walkTree(nodes []domain.TreeNode, depth int, visit func(*domain.TreeNode, int) error) error {
	for i := range nodes {
		n := &nodes[i]
		if err := visit(n, depth); err != nil {
			return err
		}
		if n.IsDir() {
			if err := walkTree(n.Children, depth+1, visit); err != nil {
				return err
			}
		}
	}
	return nil
}
