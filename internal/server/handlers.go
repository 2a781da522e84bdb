package server

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/custodia-labs/repopress/internal/core/domain"
)

type repoRequest struct {
	RepoURL string `json:"repoUrl"`
	Ref     string `json:"ref"`
}

type fullStructureRequest struct {
	RepoURL  string `json:"repoUrl"`
	Ref      string `json:"ref"`
	MaxDepth *int   `json:"maxDepth"`
}

type generateRequest struct {
	RepoURL string          `json:"repoUrl"`
	Ref     string          `json:"ref"`
	Options *optionsPayload `json:"options"`
}

// optionsPayload distinguishes absent fields from explicit zero values so
// partial option objects inherit the defaults.
type optionsPayload struct {
	IncludeReadme    *bool    `json:"includeReadme"`
	IncludeStructure *bool    `json:"includeStructure"`
	IncludeFiles     *bool    `json:"includeFiles"`
	FileExtensions   []string `json:"fileExtensions"`
	MaxDepth         *int     `json:"maxDepth"`
	MaxFileSize      *int64   `json:"maxFileSize"`
}

func (p *optionsPayload) toDomain() domain.RenderOptions {
	opts := domain.DefaultRenderOptions()
	if p == nil {
		return opts
	}
	if p.IncludeReadme != nil {
		opts.IncludeReadme = *p.IncludeReadme
	}
	if p.IncludeStructure != nil {
		opts.IncludeStructure = *p.IncludeStructure
	}
	if p.IncludeFiles != nil {
		opts.IncludeFiles = *p.IncludeFiles
	}
	if p.FileExtensions != nil {
		opts.FileExtensions = p.FileExtensions
	}
	if p.MaxDepth != nil {
		opts.MaxDepth = *p.MaxDepth
	}
	if p.MaxFileSize != nil {
		opts.MaxFileSize = *p.MaxFileSize
	}
	return opts
}

func (s *Server) handleRepoStructure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req repoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ref, err := domain.ParseRepoURL(req.RepoURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.docs.RepoStructure(r.Context(), ref, req.Ref)
	if err != nil {
		s.log.Error("repo structure failed", zap.String("repo", ref.String()), zap.Error(err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFullStructure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req fullStructureRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ref, err := domain.ParseRepoURL(req.RepoURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	maxDepth := domain.DefaultMaxDepth
	if req.MaxDepth != nil {
		maxDepth = *req.MaxDepth
	}

	out, err := s.docs.FullStructure(r.Context(), ref, req.Ref, maxDepth)
	if err != nil {
		s.log.Error("full structure failed", zap.String("repo", ref.String()), zap.Error(err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ref, err := domain.ParseRepoURL(req.RepoURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	path, cleanup, err := s.docs.GeneratePDF(r.Context(), ref, req.Ref, req.Options.toDomain())
	if err != nil {
		s.log.Error("pdf generation failed", zap.String("repo", ref.String()), zap.Error(err))
		writeError(w, statusFor(err), err.Error())
		return
	}
	defer cleanup()

	f, err := os.Open(path)
	if err != nil {
		s.log.Error("artifact open failed", zap.String("path", path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "artifact unavailable")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ref.Repo+"-documentation.pdf"))
	if _, err := io.Copy(w, f); err != nil {
		// Headers are already on the wire; all that is left is to log.
		s.log.Warn("artifact delivery interrupted", zap.String("repo", ref.String()), zap.Error(err))
	}
}
