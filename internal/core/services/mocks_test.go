package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/repopress/internal/core/domain"
	"github.com/custodia-labs/repopress/internal/core/ports/driven"
)

// mockHost implements driven.RepoHost from in-memory fixtures.
type mockHost struct {
	info      *domain.RepoInfo
	infoErr   error
	dirs      map[string][]domain.Entry
	dirErrs   map[string]error
	files     map[string]string
	fileErrs  map[string]error
	readme    *domain.Readme
	readmeErr error

	listCalls []string
}

var _ driven.RepoHost = (*mockHost)(nil)

func (m *mockHost) GetRepoInfo(_ context.Context, ref domain.RepoRef) (*domain.RepoInfo, error) {
	if m.infoErr != nil {
		return nil, m.infoErr
	}
	if m.info != nil {
		return m.info, nil
	}
	return &domain.RepoInfo{RepoRef: ref}, nil
}

func (m *mockHost) ListDir(_ context.Context, _ domain.RepoRef, path, _ string) ([]domain.Entry, error) {
	m.listCalls = append(m.listCalls, path)
	if err, ok := m.dirErrs[path]; ok {
		return nil, err
	}
	return m.dirs[path], nil
}

func (m *mockHost) GetFileContent(_ context.Context, _ domain.RepoRef, path, _ string) (string, error) {
	if err, ok := m.fileErrs[path]; ok {
		return "", err
	}
	content, ok := m.files[path]
	if !ok {
		return "", fmt.Errorf("no such file: %s", path)
	}
	return content, nil
}

func (m *mockHost) GetReadme(_ context.Context, _ domain.RepoRef, _ string) (*domain.Readme, error) {
	if m.readmeErr != nil {
		return nil, m.readmeErr
	}
	return m.readme, nil
}

func file(name, path string, size int64) domain.Entry {
	return domain.Entry{Name: name, Path: path, Type: domain.EntryFile, Size: size}
}

func dir(name, path string) domain.Entry {
	return domain.Entry{Name: name, Path: path, Type: domain.EntryDir}
}

// collectSink records emitted sections in order.
type collectSink struct {
	sections []domain.Section
	failOn   int // emit index to fail at, -1 to never fail
}

func newCollectSink() *collectSink {
	return &collectSink{failOn: -1}
}

func (c *collectSink) Emit(s domain.Section) error {
	if c.failOn >= 0 && len(c.sections) == c.failOn {
		return fmt.Errorf("sink full")
	}
	c.sections = append(c.sections, s)
	return nil
}
