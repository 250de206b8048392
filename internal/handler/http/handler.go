package http

import (
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/internal/service"
	"github.com/MKhiriev/go-sealed-drive/models"
)

// maxBlobSize bounds a single uploaded blob.
const maxBlobSize = 1 << 30

type Handler struct {
	blobs service.BlobServer
	build models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(blobs service.BlobServer, build models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		blobs:  blobs,
		build:  build,
		logger: logger,
	}
}
