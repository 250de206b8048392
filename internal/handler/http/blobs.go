package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-sealed-drive/internal/logger"
)

const blobsPrefix = "/api/blobs/"

// copyRequest is the body of POST /api/blobs/copy.
type copyRequest struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
}

func (h *Handler) getBlob(w http.ResponseWriter, r *http.Request) {
	owner, key, err := h.ownerAndKey(r)
	if err != nil {
		writeError(w, r, "*Handler.getBlob", err)
		return
	}

	data, etag, err := h.blobs.Get(r.Context(), owner, key)
	if err != nil {
		writeError(w, r, "*Handler.getBlob", err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("ETag", quoteETag(etag))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err = w.Write(data); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getBlob").Msg("error writing blob")
	}
}

// putBlob stores the request body. If-None-Match: * requires the key to be
// absent and If-Match requires the current ETag; a failed precondition
// answers 412.
func (h *Handler) putBlob(w http.ResponseWriter, r *http.Request) {
	owner, key, err := h.ownerAndKey(r)
	if err != nil {
		writeError(w, r, "*Handler.putBlob", err)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBlobSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = ErrBlobTooLarge
		}
		writeError(w, r, "*Handler.putBlob", err)
		return
	}

	var etag string
	ifMatch := r.Header.Get("If-Match")
	switch {
	case strings.TrimSpace(r.Header.Get("If-None-Match")) == "*":
		etag, err = h.blobs.PutIfMatch(r.Context(), owner, key, data, "")
	case ifMatch != "":
		expected, parseErr := parseETag(ifMatch)
		if parseErr != nil {
			writeError(w, r, "*Handler.putBlob", parseErr)
			return
		}
		etag, err = h.blobs.PutIfMatch(r.Context(), owner, key, data, expected)
	default:
		etag, err = h.blobs.Put(r.Context(), owner, key, data)
	}
	if err != nil {
		writeError(w, r, "*Handler.putBlob", err)
		return
	}

	w.Header().Set("ETag", quoteETag(etag))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteBlob(w http.ResponseWriter, r *http.Request) {
	owner, key, err := h.ownerAndKey(r)
	if err != nil {
		writeError(w, r, "*Handler.deleteBlob", err)
		return
	}

	if err = h.blobs.Delete(r.Context(), owner, key); err != nil {
		writeError(w, r, "*Handler.deleteBlob", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) copyBlob(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.copyBlob", err)
		return
	}

	var req copyRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "*Handler.copyBlob", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	if err = h.blobs.Copy(r.Context(), owner, req.Src, req.Dst); err != nil {
		writeError(w, r, "*Handler.copyBlob", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ownerAndKey(r *http.Request) (string, string, error) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		return "", "", err
	}
	key, err := keyFromPath(r, blobsPrefix)
	if err != nil {
		return "", "", err
	}
	return owner, key, nil
}

// keyFromPath returns the unescaped remainder of the request path after
// prefix. The escaped path is used so that "%2F" inside a segment is not
// mistaken for a separator.
func keyFromPath(r *http.Request, prefix string) (string, error) {
	rest, ok := strings.CutPrefix(r.URL.EscapedPath(), prefix)
	if !ok || rest == "" {
		return "", ErrInvalidBlobPath
	}

	segments := strings.Split(rest, "/")
	for i, s := range segments {
		unescaped, err := url.PathUnescape(s)
		if err != nil || strings.Contains(unescaped, "/") {
			return "", ErrInvalidBlobPath
		}
		segments[i] = unescaped
	}
	return strings.Join(segments, "/"), nil
}

func quoteETag(etag string) string {
	return `"` + etag + `"`
}

// parseETag accepts one strong or weak entity tag.
func parseETag(header string) (string, error) {
	header = strings.TrimPrefix(strings.TrimSpace(header), "W/")
	if len(header) < 2 || header[0] != '"' || header[len(header)-1] != '"' {
		return "", ErrInvalidETag
	}
	etag := header[1 : len(header)-1]
	if etag == "" || strings.ContainsAny(etag, `",`) {
		return "", ErrInvalidETag
	}
	return etag, nil
}
