package utils

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSigner(t *testing.T) (ed25519.PublicKey, SignFunc) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return pub, func(msg []byte) ([]byte, error) { return ed25519.Sign(priv, msg), nil }
}

func TestGenerateJWTToken_RoundTrip(t *testing.T) {
	pub, sign := newSigner(t)

	token, err := GenerateJWTToken("sealed-drive", pub, time.Hour, sign)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)
	assert.Equal(t, token.SignedString, token.String())

	parsed, err := ValidateAndParseJWTToken(token.SignedString, "sealed-drive", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []byte(pub), parsed.PublicKey)
	assert.Equal(t, hex.EncodeToString(pub), parsed.Subject)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	pub, sign := newSigner(t)

	tests := []struct {
		name     string
		issuer   string
		key      []byte
		duration time.Duration
		sign     SignFunc
	}{
		{name: "empty issuer", key: pub, duration: time.Hour, sign: sign},
		{name: "short key", issuer: "i", key: []byte{1}, duration: time.Hour, sign: sign},
		{name: "zero duration", issuer: "i", key: pub, sign: sign},
		{name: "nil signer", issuer: "i", key: pub, duration: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.key, tt.duration, tt.sign)
			assert.Error(t, err)
		})
	}
}

func TestGenerateJWTToken_SignerError(t *testing.T) {
	pub, _ := newSigner(t)
	_, err := GenerateJWTToken("i", pub, time.Hour, func([]byte) ([]byte, error) { return nil, errors.New("boom") })
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	pub, sign := newSigner(t)
	otherPub, _ := newSigner(t)

	valid, err := GenerateJWTToken("sealed-drive", pub, time.Hour, sign)
	require.NoError(t, err)

	// claims name a key that did not sign the token
	forged, err := GenerateJWTToken("sealed-drive", otherPub, time.Hour, sign)
	require.NoError(t, err)

	expired, err := GenerateJWTToken("sealed-drive", pub, time.Nanosecond, sign)
	require.NoError(t, err)
	time.Sleep(time.Second + 10*time.Millisecond)

	tests := []struct {
		name   string
		token  string
		issuer string
	}{
		{name: "wrong issuer", token: valid.SignedString, issuer: "other"},
		{name: "forged subject", token: forged.SignedString, issuer: "sealed-drive"},
		{name: "expired", token: expired.SignedString, issuer: "sealed-drive"},
		{name: "malformed", token: "not.a.jwt", issuer: "sealed-drive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.issuer, 0)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_MaxLifetime(t *testing.T) {
	pub, sign := newSigner(t)

	token, err := GenerateJWTToken("sealed-drive", pub, 24*time.Hour, sign)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, "sealed-drive", 5*time.Minute)
	assert.ErrorIs(t, err, ErrTokenLifetimeTooLong)

	_, err = ValidateAndParseJWTToken(token.SignedString, "sealed-drive", 24*time.Hour)
	assert.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, "sealed-drive", 0)
	assert.NoError(t, err)
}

func TestValidateAndParseJWTToken_MaxLifetimeNeedsIssuedAt(t *testing.T) {
	pub, sign := newSigner(t)

	claims := &jwt.RegisteredClaims{
		Issuer:    "sealed-drive",
		Subject:   hex.EncodeToString(pub),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	input, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SigningString()
	require.NoError(t, err)
	sig, err := sign([]byte(input))
	require.NoError(t, err)
	signed := input + "." + base64.RawURLEncoding.EncodeToString(sig)

	_, err = ValidateAndParseJWTToken(signed, "sealed-drive", time.Hour)
	assert.ErrorIs(t, err, ErrTokenLifetimeTooLong)

	_, err = ValidateAndParseJWTToken(signed, "sealed-drive", 0)
	assert.NoError(t, err)
}

func TestParseBearerToken(t *testing.T) {
	got, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := ParseBearerToken(header)
		assert.Error(t, err, header)
	}
}
