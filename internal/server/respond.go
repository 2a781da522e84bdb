package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/repopress/internal/core/domain"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service errors onto HTTP statuses: bad input is the
// client's fault, a missing repository is 404, everything else is 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRepoURL):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRepoNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
