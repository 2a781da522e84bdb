package driving

import (
	"context"

	"github.com/custodia-labs/repopress/internal/core/domain"
)

// RepoStructure is the root-level listing of a repository together with
// its README and identity.
type RepoStructure struct {
	Structure []domain.TreeNode `json:"structure"`
	Readme    *domain.Readme    `json:"readme"`
	RepoInfo  domain.RepoRef    `json:"repoInfo"`
}

// FullStructure is the recursive listing of a repository.
type FullStructure struct {
	Structure []domain.TreeNode `json:"structure"`
	RepoInfo  domain.RepoRef    `json:"repoInfo"`
}

// Documents is the driving port for repository document operations.
// gitRef pins a branch, tag, or commit; "" selects the default branch.
type Documents interface {
	// RepoStructure returns the root-level listing plus README and identity.
	RepoStructure(ctx context.Context, ref domain.RepoRef, gitRef string) (*RepoStructure, error)

	// FullStructure returns the recursive tree bounded by maxDepth.
	FullStructure(ctx context.Context, ref domain.RepoRef, gitRef string, maxDepth int) (*FullStructure, error)

	// GeneratePDF renders the repository document into a transient file and
	// returns its path with a cleanup function. The cleanup function must be
	// called on every exit path once the artifact has been delivered or
	// abandoned.
	GeneratePDF(ctx context.Context, ref domain.RepoRef, gitRef string, opts domain.RenderOptions) (string, func(), error)
}
