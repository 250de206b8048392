package adapter

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-sealed-drive/internal/crypto"
	"github.com/MKhiriev/go-sealed-drive/internal/utils"
	"github.com/MKhiriev/go-sealed-drive/models"
)

// tokenRefreshMargin renews a cached token this long before it expires.
const tokenRefreshMargin = 30 * time.Second

type keyPairTokenSource struct {
	keys     crypto.KeyManager
	pair     models.KeyPair
	duration time.Duration
	now      func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewKeyPairTokenSource issues EdDSA access tokens signed with pair through
// keys, caching each token until shortly before it expires.
func NewKeyPairTokenSource(keys crypto.KeyManager, pair models.KeyPair, duration time.Duration) TokenSource {
	if duration <= tokenRefreshMargin {
		duration = 2 * tokenRefreshMargin
	}
	return &keyPairTokenSource{keys: keys, pair: pair, duration: duration, now: time.Now}
}

func (s *keyPairTokenSource) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.now().Add(tokenRefreshMargin).Before(s.expires) {
		return s.token, nil
	}

	token, err := utils.GenerateJWTToken(utils.TokenIssuer, s.pair.PublicKey, s.duration, func(msg []byte) ([]byte, error) {
		return s.keys.Sign(s.pair.PrivateKey, msg)
	})
	if err != nil {
		return "", err
	}

	s.token, s.expires = token.SignedString, s.now().Add(s.duration)
	return s.token, nil
}
