package services

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/custodia-labs/repopress/internal/core/domain"
	"github.com/custodia-labs/repopress/internal/core/ports/driven"
)

// mockRenderer writes a fixed payload on Close and records sections.
type mockRenderer struct {
	sections []domain.Section
	beginErr error
	closeErr error
}

var _ driven.Renderer = (*mockRenderer)(nil)

func (m *mockRenderer) Begin(w io.Writer) (driven.DocumentSink, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return &mockSink{renderer: m, w: w}, nil
}

type mockSink struct {
	renderer *mockRenderer
	w        io.Writer
}

func (s *mockSink) Emit(sec domain.Section) error {
	s.renderer.sections = append(s.renderer.sections, sec)
	return nil
}

func (s *mockSink) Close() error {
	if s.renderer.closeErr != nil {
		return s.renderer.closeErr
	}
	_, err := s.w.Write([]byte("%PDF-mock"))
	return err
}

func structureHost() *mockHost {
	return &mockHost{
		info: &domain.RepoInfo{RepoRef: testRef, Description: "demo"},
		dirs: map[string][]domain.Entry{
			"":    {file("README.md", "README.md", 5), dir("src", "src")},
			"src": {file("a.js", "src/a.js", 10)},
		},
		files:  map[string]string{"README.md": "Hello", "src/a.js": "console.log(1)"},
		readme: &domain.Readme{Name: "README.md", Content: "Hello"},
	}
}

func TestDocuments_RepoStructure(t *testing.T) {
	t.Run("returns root listing with readme and identity", func(t *testing.T) {
		svc := NewDocuments(structureHost(), &mockRenderer{}, zap.NewNop())

		out, err := svc.RepoStructure(context.Background(), testRef, "")

		require.NoError(t, err)
		require.Len(t, out.Structure, 2)
		assert.Equal(t, "README.md", out.Structure[0].Name)
		assert.Nil(t, out.Structure[1].Children) // root listing only
		require.NotNil(t, out.Readme)
		assert.Equal(t, "Hello", out.Readme.Content)
		assert.Equal(t, testRef, out.RepoInfo)
	})

	t.Run("propagates root listing failure", func(t *testing.T) {
		host := structureHost()
		host.dirErrs = map[string]error{"": errors.New("boom")}
		svc := NewDocuments(host, &mockRenderer{}, zap.NewNop())

		_, err := svc.RepoStructure(context.Background(), testRef, "")

		require.Error(t, err)
	})

	t.Run("swallows readme failure", func(t *testing.T) {
		host := structureHost()
		host.readmeErr = errors.New("boom")
		svc := NewDocuments(host, &mockRenderer{}, zap.NewNop())

		out, err := svc.RepoStructure(context.Background(), testRef, "")

		require.NoError(t, err)
		assert.Nil(t, out.Readme)
	})
}

func TestDocuments_FullStructure(t *testing.T) {
	t.Run("returns recursive tree", func(t *testing.T) {
		svc := NewDocuments(structureHost(), &mockRenderer{}, zap.NewNop())

		out, err := svc.FullStructure(context.Background(), testRef, "", 3)

		require.NoError(t, err)
		require.Len(t, out.Structure, 2)
		require.Len(t, out.Structure[1].Children, 1)
		assert.Equal(t, "src/a.js", out.Structure[1].Children[0].Path)
	})

	t.Run("fails fast on inaccessible repository", func(t *testing.T) {
		host := structureHost()
		host.infoErr = errors.New("not found")
		svc := NewDocuments(host, &mockRenderer{}, zap.NewNop())

		_, err := svc.FullStructure(context.Background(), testRef, "", 3)

		require.Error(t, err)
		assert.Empty(t, host.listCalls)
	})

	t.Run("clamps depth into range", func(t *testing.T) {
		host := structureHost()
		svc := NewDocuments(host, &mockRenderer{}, zap.NewNop())

		_, err := svc.FullStructure(context.Background(), testRef, "", -4)

		require.NoError(t, err)
		assert.Equal(t, []string{""}, host.listCalls)
	})
}

func TestDocuments_GeneratePDF(t *testing.T) {
	t.Run("writes artifact and cleanup removes it", func(t *testing.T) {
		renderer := &mockRenderer{}
		svc := NewDocuments(structureHost(), renderer, zap.NewNop())

		path, cleanup, err := svc.GeneratePDF(context.Background(), testRef, "", domain.DefaultRenderOptions())

		require.NoError(t, err)
		require.NotNil(t, cleanup)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-mock", string(data))
		assert.NotEmpty(t, renderer.sections)

		cleanup()
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("fails fast when repository info is unavailable", func(t *testing.T) {
		host := structureHost()
		host.infoErr = errors.New("nope")
		svc := NewDocuments(host, &mockRenderer{}, zap.NewNop())

		_, _, err := svc.GeneratePDF(context.Background(), testRef, "", domain.DefaultRenderOptions())

		require.Error(t, err)
	})

	t.Run("removes artifact when finalize fails", func(t *testing.T) {
		renderer := &mockRenderer{closeErr: errors.New("broken pipe")}
		svc := NewDocuments(structureHost(), renderer, zap.NewNop())

		_, _, err := svc.GeneratePDF(context.Background(), testRef, "", domain.DefaultRenderOptions())

		require.Error(t, err)
	})

	t.Run("skips readme fetch when disabled", func(t *testing.T) {
		host := structureHost()
		host.readmeErr = errors.New("should not be called")
		renderer := &mockRenderer{}
		svc := NewDocuments(host, renderer, zap.NewNop())
		opts := domain.DefaultRenderOptions()
		opts.IncludeReadme = false

		path, cleanup, err := svc.GeneratePDF(context.Background(), testRef, "", opts)

		require.NoError(t, err)
		defer cleanup()
		assert.NotEmpty(t, path)
		for _, s := range renderer.sections {
			_, isReadme := s.(domain.ReadmeSection)
			assert.False(t, isReadme)
		}
	})
}
