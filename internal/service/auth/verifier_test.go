package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/pourover/drinks-api/internal/config"
	"github.com/pourover/drinks-api/internal/service/auth"
	"github.com/pourover/drinks-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDomain   = "coffeeshop.example.auth0.com"
	testAudience = "drinks-api"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Domain:     testDomain,
		Audience:   testAudience,
		Algorithms: []string{"RS256"},
	}
}

func TestVerifyToken(t *testing.T) {
	t.Parallel()

	key := testutils.NewSigningKey(t)
	otherKey := testutils.NewSigningKey(t)
	verifier := auth.NewVerifierWithKeyfunc(testAuthConfig(), testutils.StaticKeyfunc(key), nil)

	tests := []struct {
		name    string
		token   string
		wantErr *auth.Error
	}{
		{
			name: "valid token",
			token: testutils.SignToken(t, key, testutils.TokenOptions{
				Audience:    testAudience,
				Issuer:      auth.Issuer(testDomain),
				Permissions: []string{"post:drinks"},
			}),
			wantErr: nil,
		},
		{
			name: "expired token",
			token: testutils.SignToken(t, key, testutils.TokenOptions{
				Audience:  testAudience,
				Issuer:    auth.Issuer(testDomain),
				ExpiresAt: time.Now().Add(-time.Hour),
			}),
			wantErr: auth.ErrExpiredToken,
		},
		{
			name: "wrong audience",
			token: testutils.SignToken(t, key, testutils.TokenOptions{
				Audience: "another-api",
				Issuer:   auth.Issuer(testDomain),
			}),
			wantErr: auth.ErrInvalidClaims,
		},
		{
			name: "wrong issuer",
			token: testutils.SignToken(t, key, testutils.TokenOptions{
				Audience: testAudience,
				Issuer:   "https://rogue.example.com/",
			}),
			wantErr: auth.ErrInvalidClaims,
		},
		{
			name: "signed by unknown key",
			token: testutils.SignToken(t, otherKey, testutils.TokenOptions{
				Audience: testAudience,
				Issuer:   auth.Issuer(testDomain),
			}),
			wantErr: auth.ErrInvalidSignature,
		},
		{
			name:    "malformed token",
			token:   "not.a.token",
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: auth.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := verifier.VerifyToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.Nil(t, claims)
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, claims)
			assert.Equal(t, "auth0|test-user", claims.Subject)
			assert.Equal(t, []string{"post:drinks"}, claims.Permissions)
		})
	}
}

func TestVerifyTokenRejectsUnexpectedAlgorithm(t *testing.T) {
	t.Parallel()

	key := testutils.NewSigningKey(t)
	cfg := testAuthConfig()
	cfg.Algorithms = []string{"RS384"}
	verifier := auth.NewVerifierWithKeyfunc(cfg, testutils.StaticKeyfunc(key), nil)

	token := testutils.SignToken(t, key, testutils.TokenOptions{
		Audience: testAudience,
		Issuer:   auth.Issuer(testDomain),
	})

	claims, err := verifier.VerifyToken(context.Background(), token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestVerifyTokenPermissionsClaim(t *testing.T) {
	t.Parallel()

	key := testutils.NewSigningKey(t)
	verifier := auth.NewVerifierWithKeyfunc(testAuthConfig(), testutils.StaticKeyfunc(key), nil)

	t.Run("absent claim decodes to nil", func(t *testing.T) {
		t.Parallel()

		token := testutils.SignToken(t, key, testutils.TokenOptions{
			Audience:        testAudience,
			Issuer:          auth.Issuer(testDomain),
			OmitPermissions: true,
		})

		claims, err := verifier.VerifyToken(context.Background(), token)
		require.NoError(t, err)
		assert.Nil(t, claims.Permissions)
	})

	t.Run("empty claim decodes to empty slice", func(t *testing.T) {
		t.Parallel()

		token := testutils.SignToken(t, key, testutils.TokenOptions{
			Audience:    testAudience,
			Issuer:      auth.Issuer(testDomain),
			Permissions: []string{},
		})

		claims, err := verifier.VerifyToken(context.Background(), token)
		require.NoError(t, err)
		require.NotNil(t, claims.Permissions)
		assert.Empty(t, claims.Permissions)
	})
}

func TestCheckPermission(t *testing.T) {
	t.Parallel()

	key := testutils.NewSigningKey(t)
	verifier := auth.NewVerifierWithKeyfunc(testAuthConfig(), testutils.StaticKeyfunc(key), nil)

	tests := []struct {
		name       string
		claims     *auth.Claims
		permission string
		wantErr    *auth.Error
	}{
		{
			name:       "permission present",
			claims:     &auth.Claims{Permissions: []string{"get:drinks-detail", "post:drinks"}},
			permission: "post:drinks",
			wantErr:    nil,
		},
		{
			name:       "permission absent",
			claims:     &auth.Claims{Permissions: []string{"get:drinks-detail"}},
			permission: "delete:drinks",
			wantErr:    auth.ErrPermissionDenied,
		},
		{
			name:       "empty permission list",
			claims:     &auth.Claims{Permissions: []string{}},
			permission: "post:drinks",
			wantErr:    auth.ErrPermissionDenied,
		},
		{
			name:       "permissions claim missing",
			claims:     &auth.Claims{},
			permission: "post:drinks",
			wantErr:    auth.ErrMissingPermissionsClaim,
		},
		{
			name:       "nil claims",
			claims:     nil,
			permission: "post:drinks",
			wantErr:    auth.ErrMissingPermissionsClaim,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := verifier.CheckPermission(tt.claims, tt.permission)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestErrorCarriesKindAndStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unauthorized", auth.ErrPermissionDenied.Code)
	assert.Equal(t, 403, auth.ErrPermissionDenied.Status)
	assert.Equal(t, "invalid_claims", auth.ErrMissingPermissionsClaim.Code)
	assert.Equal(t, 400, auth.ErrMissingPermissionsClaim.Status)
	assert.Equal(t, 401, auth.ErrExpiredToken.Status)
	assert.NotEmpty(t, auth.ErrExpiredToken.Error())
}
