package http

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/internal/utils"
)

// auth authenticates the request by its EdDSA bearer token.
//
// The token verifies against the public key in its own subject, so the
// server needs no account registry: holding the private key is the
// account. On success the hex public key is stored in the request context
// under [utils.PublicKeyCtxKey].
//
// Missing or invalid tokens are rejected with 401, accounts outside the
// allow-list with 403.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		token, err := h.blobs.ParseToken(r.Context(), tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			utils.WriteError(w, ErrInvalidToken.Error(), http.StatusUnauthorized)
			return
		}

		owner := hex.EncodeToString(token.PublicKey)
		if err = h.blobs.Authorize(owner); err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}

		ctx := context.WithValue(r.Context(), utils.PublicKeyCtxKey, owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ownerFromRequest returns the account set by auth.
func ownerFromRequest(r *http.Request) (string, error) {
	owner, ok := utils.GetPublicKeyFromContext(r.Context())
	if !ok {
		return "", fmt.Errorf("no authenticated account in request context")
	}
	return owner, nil
}
