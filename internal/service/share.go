package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-sealed-drive/internal/crypto"
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/models"
)

// Share link layout: <base>/s#d=<bundle>&u=<presigned url>. Both values live
// in the fragment, which browsers and HTTP clients never send to a server.
const (
	sharePath        = "/s"
	shareBundleParam = "d"
	shareURLParam    = "u"
)

type shareService struct {
	manifest  ManifestStore
	codec     crypto.ShareCodec
	cipher    crypto.FileCipher
	presigner Presigner
	fetcher   SharedBlobFetcher
	baseURL   string
	logger    *logger.Logger
}

func NewShareService(manifest ManifestStore, codec crypto.ShareCodec, cipher crypto.FileCipher, presigner Presigner, fetcher SharedBlobFetcher, baseURL string, log *logger.Logger) ShareService {
	return &shareService{
		manifest:  manifest,
		codec:     codec,
		cipher:    cipher,
		presigner: presigner,
		fetcher:   fetcher,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    log,
	}
}

func (s *shareService) CreateShareLink(ctx context.Context, fileID, password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	entry, err := s.manifest.GetFile(fileID)
	if err != nil {
		return "", err
	}

	bundle, err := s.codec.EncryptSharePayload(models.SharePayload{
		FileKey:   entry.FileKey,
		FileNonce: entry.FileNonce,
		FileName:  entry.FileName,
		MimeType:  entry.MimeType,
	}, password)
	if err != nil {
		return "", fmt.Errorf("seal share payload: %w", err)
	}

	downloadURL, err := s.presigner.Presign(ctx, models.FileBlobKey(fileID))
	if err != nil {
		return "", fmt.Errorf("presign file blob: %w", err)
	}

	fragment := url.Values{}
	fragment.Set(shareBundleParam, bundle)
	fragment.Set(shareURLParam, downloadURL)

	s.logger.Info().Str("func", "shareService.CreateShareLink").Str("file_id", fileID).Msg("share link created")
	return s.baseURL + sharePath + "#" + fragment.Encode(), nil
}

func (s *shareService) OpenShareLink(ctx context.Context, link, password string) (models.SharedFile, error) {
	if password == "" {
		return models.SharedFile{}, ErrEmptyPassword
	}

	bundle, downloadURL, err := parseShareLink(link)
	if err != nil {
		return models.SharedFile{}, err
	}

	payload, err := s.codec.DecryptSharePayload(bundle, password)
	if err != nil {
		return models.SharedFile{}, fmt.Errorf("open share payload: %w", err)
	}

	sealed, err := s.fetcher.FetchShared(ctx, downloadURL)
	if err != nil {
		return models.SharedFile{}, fmt.Errorf("fetch shared blob: %w", err)
	}

	content, err := s.cipher.Decrypt(sealed, payload.FileKey, payload.FileNonce)
	if err != nil {
		return models.SharedFile{}, fmt.Errorf("decrypt shared file: %w", err)
	}

	return models.SharedFile{FileName: payload.FileName, MimeType: payload.MimeType, Content: content}, nil
}

func parseShareLink(link string) (bundle, downloadURL string, err error) {
	_, fragment, ok := strings.Cut(link, "#")
	if !ok {
		return "", "", ErrInvalidLink
	}

	values, err := url.ParseQuery(fragment)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidLink, err)
	}

	bundle, downloadURL = values.Get(shareBundleParam), values.Get(shareURLParam)
	if bundle == "" || downloadURL == "" {
		return "", "", ErrInvalidLink
	}
	return bundle, downloadURL, nil
}
