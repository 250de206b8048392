package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-sealed-drive/internal/config"
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
	"github.com/MKhiriev/go-sealed-drive/internal/utils"
)

const octetStream = "application/octet-stream"

// HTTPBlobStore talks to the blob server. It implements store.Backend and
// service.RemoteBlobs.
type HTTPBlobStore struct {
	client *utils.HTTPClient
	tokens TokenSource
	logger *logger.Logger
}

// NewHTTPBlobStore returns a client for the blob server at
// adapterCfg.HTTPAddress. A scheme-less address is treated as http.
func NewHTTPBlobStore(adapterCfg config.ClientAdapter, tokens TokenSource, log *logger.Logger) (*HTTPBlobStore, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)
	client.SetError(&utils.ErrorResponse{})

	return &HTTPBlobStore{client: client, tokens: tokens, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *HTTPBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, _, err := h.GetVersioned(ctx, key)
	return data, err
}

func (h *HTTPBlobStore) GetVersioned(ctx context.Context, key string) ([]byte, string, error) {
	req, err := h.authedRequest(ctx, key)
	if err != nil {
		return nil, "", err
	}

	resp, err := req.Get(blobPath(key))
	if err != nil {
		return nil, "", mapRequestError("get blob", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, "", err
	}
	return resp.Body(), parseETag(resp.Header().Get("ETag")), nil
}

func (h *HTTPBlobStore) Put(ctx context.Context, key string, data []byte) error {
	req, err := h.authedRequest(ctx, key)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", octetStream).
		SetBody(data).
		Put(blobPath(key))
	if err != nil {
		return mapRequestError("put blob", err)
	}
	return mapHTTPError(resp)
}

// PutIfMatch sends If-Match with etag, or If-None-Match: * when etag is
// empty, and returns the ETag the server assigned.
func (h *HTTPBlobStore) PutIfMatch(ctx context.Context, key string, data []byte, etag string) (string, error) {
	req, err := h.authedRequest(ctx, key)
	if err != nil {
		return "", err
	}

	if etag == "" {
		req.SetHeader("If-None-Match", "*")
	} else {
		req.SetHeader("If-Match", quoteETag(etag))
	}

	resp, err := req.
		SetHeader("Content-Type", octetStream).
		SetBody(data).
		Put(blobPath(key))
	if err != nil {
		return "", mapRequestError("put blob", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	if newTag := parseETag(resp.Header().Get("ETag")); newTag != "" {
		return newTag, nil
	}
	return store.ETag(data), nil
}

func (h *HTTPBlobStore) Delete(ctx context.Context, key string) error {
	req, err := h.authedRequest(ctx, key)
	if err != nil {
		return err
	}

	resp, err := req.Delete(blobPath(key))
	if err != nil {
		return mapRequestError("delete blob", err)
	}
	return mapHTTPError(resp)
}

// Copy asks the server to duplicate src under dst without the bytes
// crossing the network.
func (h *HTTPBlobStore) Copy(ctx context.Context, src, dst string) error {
	if err := store.ValidateKey(src); err != nil {
		return err
	}
	req, err := h.authedRequest(ctx, dst)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(CopyRequest{Src: src, Dst: dst}).
		Post(copyPath)
	if err != nil {
		return mapRequestError("copy blob", err)
	}
	return mapHTTPError(resp)
}

// Presign returns a download URL for key that works without credentials
// until the server-configured expiry.
func (h *HTTPBlobStore) Presign(ctx context.Context, key string) (string, error) {
	req, err := h.authedRequest(ctx, key)
	if err != nil {
		return "", err
	}

	var out PresignResponse
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(PresignRequest{Key: key}).
		SetResult(&out).
		Post(presignPath)
	if err != nil {
		return "", mapRequestError("presign blob", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("%w: empty presigned url", store.ErrTransport)
	}

	h.logger.Debug().Str("func", "HTTPBlobStore.Presign").Int64("expires_at", out.ExpiresAt).Msg("blob presigned")
	return out.URL, nil
}

// FetchShared downloads a presigned URL. It sends no credentials, so it
// works for recipients without an account.
func (h *HTTPBlobStore) FetchShared(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: unsupported shared url %q", store.ErrTransport, rawURL)
	}

	resp, err := h.client.R().SetContext(ctx).Get(u.String())
	if err != nil {
		return nil, mapRequestError("fetch shared blob", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (h *HTTPBlobStore) Close() error {
	return nil
}

func (h *HTTPBlobStore) authedRequest(ctx context.Context, key string) (*resty.Request, error) {
	if err := store.ValidateKey(key); err != nil {
		return nil, err
	}

	token, err := h.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token), nil
}

// blobPath escapes each segment of key below blobsPath.
func blobPath(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return blobsPath + strings.Join(segments, "/")
}

func quoteETag(etag string) string {
	return `"` + etag + `"`
}

func parseETag(header string) string {
	header = strings.TrimPrefix(strings.TrimSpace(header), "W/")
	return strings.Trim(header, `"`)
}

var _ store.Backend = (*HTTPBlobStore)(nil)
