package driven

import (
	"context"

	"github.com/custodia-labs/repopress/internal/core/domain"
)

// RepoHost retrieves repository data from the hosting provider.
// Implementations must preserve the provider's listing order; callers rely
// on it for deterministic document ordering.
type RepoHost interface {
	// GetRepoInfo returns cover-page metadata for the repository.
	GetRepoInfo(ctx context.Context, ref domain.RepoRef) (*domain.RepoInfo, error)

	// ListDir returns the immediate children at path ("" is the repository
	// root) at the given git ref ("" is the default branch).
	ListDir(ctx context.Context, ref domain.RepoRef, path, gitRef string) ([]domain.Entry, error)

	// GetFileContent returns the decoded text content of the file at path.
	GetFileContent(ctx context.Context, ref domain.RepoRef, path, gitRef string) (string, error)

	// GetReadme returns the repository README, or (nil, nil) when the
	// repository has none.
	GetReadme(ctx context.Context, ref domain.RepoRef, gitRef string) (*domain.Readme, error)
}
