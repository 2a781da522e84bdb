package github

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/custodia-labs/repopress/internal/core/domain"
	"github.com/custodia-labs/repopress/internal/core/ports/driven"
)

// Ensure Host implements the port.
var _ driven.RepoHost = (*Host)(nil)

// Host adapts the GitHub Contents API to the driven.RepoHost port.
type Host struct {
	client *Client
	log    *zap.Logger
}

// NewHost creates a repository host over the given client.
func NewHost(client *Client, log *zap.Logger) *Host {
	return &Host{client: client, log: log}
}

// GetRepoInfo returns cover-page metadata for the repository.
func (h *Host) GetRepoInfo(ctx context.Context, ref domain.RepoRef) (*domain.RepoInfo, error) {
	repo, err := h.client.GetRepository(ctx, ref.Owner, ref.Repo)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRepoNotFound, ref)
		}
		return nil, err
	}

	return &domain.RepoInfo{
		RepoRef:       ref,
		Description:   repo.GetDescription(),
		DefaultBranch: repo.GetDefaultBranch(),
		Stars:         repo.GetStargazersCount(),
		Forks:         repo.GetForksCount(),
	}, nil
}

// ListDir returns the immediate children at path in the order the API
// returned them. Symlinks and submodules are passed through as files;
// they carry no children and their content fetch degrades gracefully.
func (h *Host) ListDir(ctx context.Context, ref domain.RepoRef, path, gitRef string) ([]domain.Entry, error) {
	contents, err := h.client.ListDirectory(ctx, ref.Owner, ref.Repo, path, gitRef)
	if err != nil {
		if path == "" && IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRepoNotFound, ref)
		}
		return nil, err
	}

	entries := make([]domain.Entry, 0, len(contents))
	for _, c := range contents {
		e := domain.Entry{
			Name:        c.GetName(),
			Path:        c.GetPath(),
			Size:        int64(c.GetSize()),
			DownloadURL: c.GetDownloadURL(),
		}
		if c.GetType() == "dir" {
			e.Type = domain.EntryDir
		} else {
			e.Type = domain.EntryFile
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// GetFileContent returns the decoded text content of the file at path.
func (h *Host) GetFileContent(ctx context.Context, ref domain.RepoRef, path, gitRef string) (string, error) {
	return h.client.GetFileContent(ctx, ref.Owner, ref.Repo, path, gitRef)
}

// GetReadme returns the repository README, or (nil, nil) when the
// repository has none.
func (h *Host) GetReadme(ctx context.Context, ref domain.RepoRef, gitRef string) (*domain.Readme, error) {
	readme, err := h.client.GetReadme(ctx, ref.Owner, ref.Repo, gitRef)
	if err != nil {
		if IsNotFound(err) {
			h.log.Debug("repository has no readme", zap.String("repo", ref.String()))
			return nil, nil
		}
		return nil, err
	}

	content, err := readme.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode readme: %w", err)
	}
	return &domain.Readme{Name: readme.GetName(), Content: content}, nil
}
