package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/internal/service"
	"github.com/MKhiriev/go-sealed-drive/internal/utils"
)

type presignRequest struct {
	Key string `json:"key"`
}

type presignResponse struct {
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expiresAt"`
}

// presign answers an absolute download URL for one of the caller's blobs.
// The URL is built from the host the request reached, honoring
// X-Forwarded-Proto behind a TLS terminating proxy.
func (h *Handler) presign(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.presign", err)
		return
	}

	var req presignRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "*Handler.presign", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	path, expires, err := h.blobs.Presign(r.Context(), owner, req.Key)
	if err != nil {
		writeError(w, r, "*Handler.presign", err)
		return
	}

	resp := presignResponse{URL: requestScheme(r) + "://" + r.Host + path, ExpiresAt: expires}
	if _, err = utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.presign").Send()
	}
}

// downloadShared serves GET /shared/{owner}/{key...}?exp=&sig= without
// authentication.
func (h *Handler) downloadShared(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	key, err := keyFromPath(r, service.SharedPathPrefix+owner+"/")
	if err != nil {
		writeError(w, r, "*Handler.downloadShared", err)
		return
	}

	expires, err := strconv.ParseInt(r.URL.Query().Get("exp"), 10, 64)
	if err != nil {
		writeError(w, r, "*Handler.downloadShared", ErrInvalidExpiry)
		return
	}

	data, err := h.blobs.OpenShared(r.Context(), owner, key, expires, r.URL.Query().Get("sig"))
	if err != nil {
		writeError(w, r, "*Handler.downloadShared", err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(data); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.downloadShared").Msg("error writing blob")
	}
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" || proto == "http" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
