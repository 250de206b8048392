package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-sealed-drive/internal/service"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Get(service.SharedPathPrefix+"{owner}/*", h.downloadShared)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth, withGZip)

		r.Post("/api/blobs/copy", h.copyBlob)
		r.Post("/api/presign", h.presign)

		r.Get("/api/blobs/*", h.getBlob)
		r.Head("/api/blobs/*", h.getBlob)
		r.Put("/api/blobs/*", h.putBlob)
		r.Delete("/api/blobs/*", h.deleteBlob)
	})

	router.MethodNotAllowed(CheckHTTPMethod)

	return router
}
