package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-sealed-drive/internal/store"
	"github.com/MKhiriev/go-sealed-drive/internal/utils"
)

// mapHTTPError translates a non-2xx response into store sentinels. Anything
// that is neither "not found" nor a version conflict is a transport error.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := errorBody(resp)

	switch resp.StatusCode() {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", store.ErrBlobNotFound, body)
	case http.StatusConflict, http.StatusPreconditionFailed:
		return fmt.Errorf("%w: %s", store.ErrVersionConflict, body)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %w: %s", store.ErrTransport, ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w: %s", store.ErrTransport, ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w: %s", store.ErrTransport, ErrForbidden, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %w: %s", store.ErrTransport, ErrInternalServerError, body)
	default:
		return fmt.Errorf("%w: http %d: %s", store.ErrTransport, resp.StatusCode(), body)
	}
}

// mapRequestError wraps a failure to get any response at all.
func mapRequestError(op string, err error) error {
	if errors.Is(err, store.ErrTransport) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, store.ErrTransport, err)
}

// errorBody extracts the message of a utils.ErrorResponse, falling back to
// the raw body or the status text.
func errorBody(resp *resty.Response) string {
	if e, ok := resp.Error().(*utils.ErrorResponse); ok && e.Error != "" {
		return e.Error
	}
	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return body
}
