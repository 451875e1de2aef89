// Package testutils provides shared helpers for tests, in particular RSA
// key material, token minting, and JWKS documents matching what the external
// signing authority would serve.
package testutils

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// TestKeyID is the key identifier stamped into test tokens and JWKS documents.
const TestKeyID = "test-key-1"

// NewSigningKey generates an RSA key pair for signing test tokens.
func NewSigningKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "failed to generate RSA key")
	return key
}

// TokenOptions control the claims of a minted test token. Zero values fall
// back to a valid token for the given audience and issuer.
type TokenOptions struct {
	Subject     string
	Audience    string
	Issuer      string
	Permissions []string
	// OmitPermissions leaves the permissions claim out entirely, as opposed
	// to an empty permission list.
	OmitPermissions bool
	ExpiresAt       time.Time
	KeyID           string
}

// SignToken mints an RS256 token signed with the given key.
func SignToken(t *testing.T, key *rsa.PrivateKey, opts TokenOptions) string {
	t.Helper()

	if opts.Subject == "" {
		opts.Subject = "auth0|test-user"
	}
	if opts.ExpiresAt.IsZero() {
		opts.ExpiresAt = time.Now().Add(time.Hour)
	}
	if opts.KeyID == "" {
		opts.KeyID = TestKeyID
	}

	claims := jwt.MapClaims{
		"sub": opts.Subject,
		"iat": jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		"exp": jwt.NewNumericDate(opts.ExpiresAt),
	}
	if opts.Audience != "" {
		claims["aud"] = opts.Audience
	}
	if opts.Issuer != "" {
		claims["iss"] = opts.Issuer
	}
	if !opts.OmitPermissions {
		perms := opts.Permissions
		if perms == nil {
			perms = []string{}
		}
		claims["permissions"] = perms
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = opts.KeyID

	signed, err := token.SignedString(key)
	require.NoError(t, err, "failed to sign test token")
	return signed
}

// StaticKeyfunc returns a jwt.Keyfunc that resolves every token to the given
// key's public half, bypassing JWKS fetching in unit tests.
func StaticKeyfunc(key *rsa.PrivateKey) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return &key.PublicKey, nil
	}
}

// JWKSDocument serializes the key's public half as the JWKS JSON a signing
// authority serves from its well-known endpoint.
func JWKSDocument(t *testing.T, key *rsa.PrivateKey, keyID string) []byte {
	t.Helper()

	pub := key.Public().(*rsa.PublicKey)

	// Exponent as compact big-endian bytes (65537 -> 0x010001).
	e := pub.E
	var eBytes []byte
	for e > 0 {
		eBytes = append([]byte{byte(e & 0xff)}, eBytes...)
		e >>= 8
	}

	doc := map[string]any{
		"keys": []map[string]any{
			{
				"kty": "RSA",
				"use": "sig",
				"alg": "RS256",
				"kid": keyID,
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(eBytes),
			},
		},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err, "failed to marshal JWKS document")
	return data
}
