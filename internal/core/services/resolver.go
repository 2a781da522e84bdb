package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/custodia-labs/repopress/internal/core/domain"
	"github.com/custodia-labs/repopress/internal/core/ports/driven"
)

// ContentResolver fetches decoded file text. It substitutes an error
// placeholder instead of failing, so document assembly never aborts
// mid-stream over one unreadable file.
type ContentResolver struct {
	host driven.RepoHost
	log  *zap.Logger
}

// NewContentResolver creates a resolver over the given host.
func NewContentResolver(host driven.RepoHost, log *zap.Logger) *ContentResolver {
	return &ContentResolver{host: host, log: log}
}

// Fetch returns the text content of the file at path, or a synthetic
// placeholder describing the failure.
func (r *ContentResolver) Fetch(ctx context.Context, ref domain.RepoRef, path, gitRef string) string {
	text, err := r.host.GetFileContent(ctx, ref, path, gitRef)
	if err != nil {
		r.log.Warn("content fetch failed",
			zap.String("repo", ref.String()),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Sprintf("error fetching content for %s: %v", path, err)
	}
	return text
}
