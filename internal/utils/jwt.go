package utils

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-sealed-drive/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer is the issuer claim of every access token.
const TokenIssuer = "sealed-drive"

// tokenLifetimeLeeway absorbs the truncation of iat and exp to whole seconds.
const tokenLifetimeLeeway = time.Second

// ErrTokenLifetimeTooLong is returned for tokens whose exp - iat exceeds the
// lifetime the server accepts.
var ErrTokenLifetimeTooLong = errors.New("token lifetime exceeds the allowed maximum")

// SignFunc signs a message with the account private key. It is satisfied by
// a closure over crypto.KeyManager.Sign so the private key never has to be
// handed to the JWT library.
type SignFunc func(message []byte) ([]byte, error)

// GenerateJWTToken creates an EdDSA JWT whose subject is the hex-encoded
// publicKey. The signature is produced by sign over the JWS signing input.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("sealed-drive", pair.PublicKey, 5*time.Minute,
//		func(msg []byte) ([]byte, error) { return keys.Sign(pair.PrivateKey, msg) })
func GenerateJWTToken(issuer string, publicKey []byte, tokenDuration time.Duration, sign SignFunc) (models.Token, error) {
	if issuer == "" || tokenDuration <= 0 || sign == nil || len(publicKey) != ed25519.PublicKeySize {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   hex.EncodeToString(publicKey),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	signingInput, err := token.SigningString()
	if err != nil {
		return models.Token{}, fmt.Errorf("error building JWT signing input: %w", err)
	}

	signature, err := sign([]byte(signingInput))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	signed := signingInput + "." + base64.RawURLEncoding.EncodeToString(signature)
	return models.Token{Token: token, SignedString: signed, PublicKey: publicKey}, nil
}

// ValidateAndParseJWTToken verifies an EdDSA JWT against the public key named
// in its own subject and checks the issuer and expiry. Only EdDSA is accepted.
// A positive maxLifetime also requires an iat claim and rejects tokens living
// longer than maxLifetime.
func ValidateAndParseJWTToken(tokenString, tokenIssuer string, maxLifetime time.Duration) (models.Token, error) {
	parsed := &models.Token{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (any, error) {
		claims, ok := token.Claims.(*models.Token)
		if !ok {
			return nil, errors.New("unexpected claims type")
		}
		key, err := claims.GetPublicKey()
		if err != nil {
			return nil, err
		}
		return ed25519.PublicKey(key), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}), jwt.WithExpirationRequired(), jwt.WithIssuedAt())
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if maxLifetime > 0 {
		if parsed.IssuedAt == nil {
			return models.Token{}, fmt.Errorf("%w: no iat claim", ErrTokenLifetimeTooLong)
		}
		if lifetime := parsed.ExpiresAt.Sub(parsed.IssuedAt.Time); lifetime > maxLifetime+tokenLifetimeLeeway {
			return models.Token{}, fmt.Errorf("%w: %s", ErrTokenLifetimeTooLong, lifetime)
		}
	}

	key, err := parsed.GetPublicKey()
	if err != nil {
		return models.Token{}, err
	}

	return models.Token{Token: token, RegisteredClaims: parsed.RegisteredClaims, SignedString: tokenString, PublicKey: key}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <t>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
