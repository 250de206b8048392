package models

import (
	"encoding/hex"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token is an access token presented to the blob server.
//
// The subject claim carries the hex-encoded Ed25519 public key of the account
// and the token is signed with the matching private key, so the server can
// authenticate a request without any account registry.
type Token struct {
	*jwt.Token `json:"-"`
	jwt.RegisteredClaims

	// SignedString is the compact JWS form sent in the Authorization header.
	SignedString string `json:"-"`

	// PublicKey is the decoded subject, set after a successful parse.
	PublicKey []byte `json:"-"`
}

// GetPublicKey decodes the subject claim into an Ed25519 public key.
func (t *Token) GetPublicKey() ([]byte, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("error extracting subject from token: %w", err)
	}

	key, err := hex.DecodeString(sub)
	if err != nil || len(key) != PublicKeySize {
		return nil, fmt.Errorf("subject is not a public key: %q", sub)
	}
	return key, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
