// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/internal/utils"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// A path that exists under another method answers 404 instead of chi's
// 405, so unsupported methods do not reveal which routes exist.
//
//	router.MethodNotAllowed(CheckHTTPMethod)
func CheckHTTPMethod(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("method not allowed")
	utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}
