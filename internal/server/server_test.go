package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/custodia-labs/repopress/internal/core/domain"
	"github.com/custodia-labs/repopress/internal/core/ports/driving"
)

// stubDocuments records calls and returns canned results.
type stubDocuments struct {
	structure     *driving.RepoStructure
	structureErr  error
	full          *driving.FullStructure
	fullErr       error
	pdfPath       string
	pdfErr        error
	cleanupCalled bool

	calls       int
	gotRef      domain.RepoRef
	gotGitRef   string
	gotMaxDepth int
	gotOptions  domain.RenderOptions
}

var _ driving.Documents = (*stubDocuments)(nil)

func (s *stubDocuments) RepoStructure(_ context.Context, ref domain.RepoRef, gitRef string) (*driving.RepoStructure, error) {
	s.calls++
	s.gotRef = ref
	s.gotGitRef = gitRef
	return s.structure, s.structureErr
}

func (s *stubDocuments) FullStructure(_ context.Context, ref domain.RepoRef, gitRef string, maxDepth int) (*driving.FullStructure, error) {
	s.calls++
	s.gotRef = ref
	s.gotGitRef = gitRef
	s.gotMaxDepth = maxDepth
	return s.full, s.fullErr
}

func (s *stubDocuments) GeneratePDF(_ context.Context, ref domain.RepoRef, gitRef string, opts domain.RenderOptions) (string, func(), error) {
	s.calls++
	s.gotRef = ref
	s.gotGitRef = gitRef
	s.gotOptions = opts
	if s.pdfErr != nil {
		return "", nil, s.pdfErr
	}
	return s.pdfPath, func() { s.cleanupCalled = true }, nil
}

func newTestServer(docs *stubDocuments, staticDir string) *httptest.Server {
	srv := httptest.NewServer(New(docs, zap.NewNop(), staticDir).Handler())
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestHandleRepoStructure(t *testing.T) {
	t.Run("returns listing with readme and identity", func(t *testing.T) {
		docs := &stubDocuments{structure: &driving.RepoStructure{
			Structure: []domain.TreeNode{{Name: "README.md", Path: "README.md", Type: domain.EntryFile, Size: 5}},
			Readme:    &domain.Readme{Name: "README.md", Content: "Hello"},
			RepoInfo:  domain.RepoRef{Owner: "octo", Repo: "demo"},
		}}
		srv := newTestServer(docs, "")
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/repo-structure", `{"repoUrl":"https://github.com/octo/demo"}`)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Structure []domain.TreeNode `json:"structure"`
			Readme    *domain.Readme    `json:"readme"`
			RepoInfo  domain.RepoRef    `json:"repoInfo"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.Structure, 1)
		assert.Equal(t, "README.md", body.Structure[0].Name)
		assert.Equal(t, "Hello", body.Readme.Content)
		assert.Equal(t, "octo", body.RepoInfo.Owner)
	})

	t.Run("invalid url fails without touching the service", func(t *testing.T) {
		docs := &stubDocuments{}
		srv := newTestServer(docs, "")
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/repo-structure", `{"repoUrl":"not-a-url"}`)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Zero(t, docs.calls)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body["error"], "invalid repository url")
	})

	t.Run("malformed json is a client error", func(t *testing.T) {
		docs := &stubDocuments{}
		srv := newTestServer(docs, "")
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/repo-structure", `{`)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Zero(t, docs.calls)
	})

	t.Run("get is not allowed", func(t *testing.T) {
		srv := newTestServer(&stubDocuments{}, "")
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/repo-structure")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("missing repository maps to 404", func(t *testing.T) {
		docs := &stubDocuments{structureErr: domain.ErrRepoNotFound}
		srv := newTestServer(docs, "")
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/repo-structure", `{"repoUrl":"github.com/octo/gone"}`)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHandleFullStructure(t *testing.T) {
	t.Run("defaults max depth to three", func(t *testing.T) {
		docs := &stubDocuments{full: &driving.FullStructure{}}
		srv := newTestServer(docs, "")
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/full-structure", `{"repoUrl":"github.com/octo/demo"}`)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 3, docs.gotMaxDepth)
	})

	t.Run("passes explicit depth and ref", func(t *testing.T) {
		docs := &stubDocuments{full: &driving.FullStructure{}}
		srv := newTestServer(docs, "")
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/full-structure", `{"repoUrl":"github.com/octo/demo","maxDepth":1,"ref":"v2"}`)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 1, docs.gotMaxDepth)
		assert.Equal(t, "v2", docs.gotGitRef)
	})
}

func TestHandleGeneratePDF(t *testing.T) {
	writeArtifact := func(t *testing.T) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "out.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-test"), 0o600))
		return path
	}

	t.Run("streams the artifact and cleans up", func(t *testing.T) {
		docs := &stubDocuments{pdfPath: writeArtifact(t)}
		srv := newTestServer(docs, "")
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/generate-pdf", `{"repoUrl":"github.com/octo/demo"}`)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "demo-documentation.pdf")

		var body strings.Builder
		_, err := io.Copy(&body, resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-test", body.String())
		assert.True(t, docs.cleanupCalled)
	})

	t.Run("applies option defaults to absent fields", func(t *testing.T) {
		docs := &stubDocuments{pdfPath: writeArtifact(t)}
		srv := newTestServer(docs, "")
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/generate-pdf",
			`{"repoUrl":"github.com/octo/demo","options":{"includeFiles":false,"fileExtensions":["js"]}}`)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, docs.gotOptions.IncludeReadme)
		assert.True(t, docs.gotOptions.IncludeStructure)
		assert.False(t, docs.gotOptions.IncludeFiles)
		assert.Equal(t, []string{"js"}, docs.gotOptions.FileExtensions)
		assert.Equal(t, domain.DefaultMaxDepth, docs.gotOptions.MaxDepth)
		assert.Equal(t, int64(domain.DefaultMaxFileSize), docs.gotOptions.MaxFileSize)
	})

	t.Run("generation failure returns a json error", func(t *testing.T) {
		docs := &stubDocuments{pdfErr: assert.AnError}
		srv := newTestServer(docs, "")
		defer srv.Close()

		resp := postJSON(t, srv.URL+"/generate-pdf", `{"repoUrl":"github.com/octo/demo"}`)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body["error"])
	})
}

func TestStaticCatchAll(t *testing.T) {
	t.Run("serves bundled client files", func(t *testing.T) {
		staticDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>app</html>"), 0o600))
		srv := newTestServer(&stubDocuments{}, staticDir)
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/index.html")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body strings.Builder
		_, err = io.Copy(&body, resp.Body)
		require.NoError(t, err)
		assert.Contains(t, body.String(), "app")
	})

	t.Run("404 without a static directory", func(t *testing.T) {
		srv := newTestServer(&stubDocuments{}, "")
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/anything")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHealth(t *testing.T) {
	t.Run("reports ok", func(t *testing.T) {
		srv := newTestServer(&stubDocuments{}, "")
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	})
}
