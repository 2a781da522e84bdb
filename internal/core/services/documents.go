package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/custodia-labs/repopress/internal/core/domain"
	"github.com/custodia-labs/repopress/internal/core/ports/driven"
	"github.com/custodia-labs/repopress/internal/core/ports/driving"
)

// Ensure Documents implements the driving port.
var _ driving.Documents = (*Documents)(nil)

// Documents implements the repository document operations. One instance
// serves all requests; all per-request state lives in locals.
type Documents struct {
	host     driven.RepoHost
	renderer driven.Renderer
	builder  *TreeBuilder
	asm      *Assembler
	log      *zap.Logger
	tmpDir   string
}

// NewDocuments wires the service from its ports. Transient artifacts are
// written under the system temp directory.
func NewDocuments(host driven.RepoHost, renderer driven.Renderer, log *zap.Logger) *Documents {
	resolver := NewContentResolver(host, log)
	return &Documents{
		host:     host,
		renderer: renderer,
		builder:  NewTreeBuilder(host, log),
		asm:      NewAssembler(resolver),
		log:      log,
		tmpDir:   os.TempDir(),
	}
}

// RepoStructure returns the root-level listing plus README and identity.
// A missing or unreadable README degrades to null rather than failing the
// listing.
func (s *Documents) RepoStructure(ctx context.Context, ref domain.RepoRef, gitRef string) (*driving.RepoStructure, error) {
	entries, err := s.host.ListDir(ctx, ref, "", gitRef)
	if err != nil {
		return nil, fmt.Errorf("list repository root: %w", err)
	}

	nodes := make([]domain.TreeNode, 0, len(entries))
	for _, e := range entries {
		nodes = append(nodes, domain.NodeFromEntry(e))
	}

	readme, err := s.host.GetReadme(ctx, ref, gitRef)
	if err != nil {
		s.log.Warn("readme fetch failed", zap.String("repo", ref.String()), zap.Error(err))
		readme = nil
	}

	return &driving.RepoStructure{Structure: nodes, Readme: readme, RepoInfo: ref}, nil
}

// FullStructure returns the recursive tree bounded by maxDepth.
func (s *Documents) FullStructure(ctx context.Context, ref domain.RepoRef, gitRef string, maxDepth int) (*driving.FullStructure, error) {
	if maxDepth < 0 {
		maxDepth = 0
	}
	if maxDepth > domain.MaxDepthCeiling {
		maxDepth = domain.MaxDepthCeiling
	}

	// Distinguish an inaccessible repository from one whose root listing
	// happens to fail mid-walk: probe the metadata first.
	if _, err := s.host.GetRepoInfo(ctx, ref); err != nil {
		return nil, fmt.Errorf("get repository info: %w", err)
	}

	tree := s.builder.Build(ctx, ref, "", gitRef, maxDepth)
	return &driving.FullStructure{Structure: tree, RepoInfo: ref}, nil
}

// GeneratePDF renders the full document into a transient file and returns
// its path plus a cleanup function removing it. Cleanup is safe to call
// exactly once on every exit path.
func (s *Documents) GeneratePDF(ctx context.Context, ref domain.RepoRef, gitRef string, opts domain.RenderOptions) (string, func(), error) {
	opts.Normalize()

	info, err := s.host.GetRepoInfo(ctx, ref)
	if err != nil {
		return "", nil, fmt.Errorf("get repository info: %w", err)
	}

	var readme *domain.Readme
	if opts.IncludeReadme {
		readme, err = s.host.GetReadme(ctx, ref, gitRef)
		if err != nil {
			s.log.Warn("readme fetch failed", zap.String("repo", ref.String()), zap.Error(err))
			readme = nil
		}
	}

	var tree []domain.TreeNode
	if opts.IncludeStructure || opts.IncludeFiles {
		tree = s.builder.Build(ctx, ref, "", gitRef, opts.MaxDepth)
	}

	path := filepath.Join(s.tmpDir, fmt.Sprintf("repopress-%s-%s.pdf", ref.Repo, uuid.NewString()))
	f, err := os.Create(path)
	if err != nil {
		return "", nil, fmt.Errorf("create artifact: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.log.Warn("artifact removal failed", zap.String("path", path), zap.Error(err))
		}
	}

	sink, err := s.renderer.Begin(f)
	if err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("begin document: %w", err)
	}

	if err := s.asm.Assemble(ctx, info, readme, tree, gitRef, opts, sink); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("assemble document: %w", err)
	}

	if err := sink.Close(); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("finalize document: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("flush artifact: %w", err)
	}

	s.log.Info("document generated",
		zap.String("repo", ref.String()),
		zap.String("artifact", filepath.Base(path)))
	return path, cleanup, nil
}
