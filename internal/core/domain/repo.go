package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// repoURLPattern matches the owner/repo segment of a GitHub URL anywhere
// in the input string.
var repoURLPattern = regexp.MustCompile(`github\.com/([^/\s]+)/([^/\s?#]+)`)

// RepoRef identifies a GitHub repository. Immutable once parsed.
type RepoRef struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

// ParseRepoURL extracts a RepoRef from any string containing
// github.com/{owner}/{repo}. A trailing ".git" suffix on the repository
// name is dropped. Anything else fails with ErrInvalidRepoURL.
func ParseRepoURL(raw string) (RepoRef, error) {
	m := repoURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return RepoRef{}, fmt.Errorf("%w: %q", ErrInvalidRepoURL, raw)
	}
	return RepoRef{
		Owner: m[1],
		Repo:  strings.TrimSuffix(m[2], ".git"),
	}, nil
}

// String returns the owner/repo form.
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Repo
}

// RepoInfo is the repository metadata shown on the cover page.
type RepoInfo struct {
	RepoRef
	Description   string
	DefaultBranch string
	Stars         int
	Forks         int
}

// Readme is a repository README fetched from the repository root.
type Readme struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}
