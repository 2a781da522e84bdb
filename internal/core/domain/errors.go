package domain

import "errors"

// Domain errors surfaced to the HTTP layer.
var (
	// ErrInvalidRepoURL indicates the input does not contain a
	// github.com/{owner}/{repo} segment.
	ErrInvalidRepoURL = errors.New("invalid repository url")

	// ErrRepoNotFound indicates the repository does not exist or is not
	// accessible with the configured credentials.
	ErrRepoNotFound = errors.New("repository not found")
)
