package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/internal/service"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
	"github.com/MKhiriev/go-sealed-drive/internal/utils"
)

// errorStatusMap is checked in order; the first match wins.
var errorStatusMap = []struct {
	target error
	status int
}{
	{store.ErrBlobNotFound, http.StatusNotFound},
	{store.ErrVersionConflict, http.StatusPreconditionFailed},
	{store.ErrInvalidBlobKey, http.StatusBadRequest},
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrLinkExpired, http.StatusForbidden},
	{service.ErrLinkSignature, http.StatusForbidden},

	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidBlobPath, http.StatusBadRequest},
	{ErrInvalidETag, http.StatusBadRequest},
	{ErrInvalidExpiry, http.StatusBadRequest},
	{ErrBlobTooLarge, http.StatusRequestEntityTooLarge},
}

func statusFromError(err error) int {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and replies with its mapped status. Internal errors
// are not echoed to the caller.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Msg("internal error")
		message = http.StatusText(status)
	} else {
		log.Debug().Err(err).Str("func", funcName).Int("status", status).Send()
	}

	utils.WriteError(w, message, status)
}
