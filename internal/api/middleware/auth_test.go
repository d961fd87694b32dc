package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-metadata-registry/internal/api/middleware"
	"github.com/feral-file/ff-metadata-registry/internal/domain"
	"github.com/feral-file/ff-metadata-registry/internal/identity"
)

const (
	testCaller = "0x396343362be2a4da1ce0c1c210945346fb82aa49"
	testAPIKey = "test-api-key"
)

func generateKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)

	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return privateKey, string(publicPEM)
}

func signToken(t *testing.T, key *rsa.PrivateKey, method jwt.SigningMethod, claims jwt.RegisteredClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestNewAuthenticator(t *testing.T) {
	_, publicPEM := generateKeyPair(t)

	tests := []struct {
		name      string
		cfg       middleware.AuthConfig
		expectErr bool
	}{
		{name: "empty config", cfg: middleware.AuthConfig{}, expectErr: false},
		{name: "public key and api keys", cfg: middleware.AuthConfig{JWTPublicKey: publicPEM, APIKeys: map[string]string{testAPIKey: testCaller}}, expectErr: false},
		{name: "malformed public key", cfg: middleware.AuthConfig{JWTPublicKey: "not a pem"}, expectErr: true},
		{name: "api key with invalid address", cfg: middleware.AuthConfig{APIKeys: map[string]string{testAPIKey: "tz1abc"}}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := middleware.NewAuthenticator(tt.cfg)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, a)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, a)
			}
		})
	}
}

func TestAuthenticator_Authenticate(t *testing.T) {
	privateKey, publicPEM := generateKeyPair(t)
	otherKey, _ := generateKeyPair(t)

	a, err := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: publicPEM,
		APIKeys:      map[string]string{testAPIKey: testCaller},
	})
	require.NoError(t, err)

	expectedCaller, _ := domain.NormalizeAddress(testCaller)
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name           string
		header         string
		expectSuccess  bool
		expectedType   string
		expectedCaller domain.Address
	}{
		{
			name:           "valid bearer token",
			header:         "Bearer " + signToken(t, privateKey, jwt.SigningMethodRS256, jwt.RegisteredClaims{Subject: testCaller, ExpiresAt: future}),
			expectSuccess:  true,
			expectedType:   "jwt",
			expectedCaller: expectedCaller,
		},
		{
			name:          "expired bearer token",
			header:        "Bearer " + signToken(t, privateKey, jwt.SigningMethodRS256, jwt.RegisteredClaims{Subject: testCaller, ExpiresAt: past}),
			expectSuccess: false,
		},
		{
			name:          "bearer token signed by another key",
			header:        "Bearer " + signToken(t, otherKey, jwt.SigningMethodRS256, jwt.RegisteredClaims{Subject: testCaller, ExpiresAt: future}),
			expectSuccess: false,
		},
		{
			name:          "bearer token with non-address subject",
			header:        "Bearer " + signToken(t, privateKey, jwt.SigningMethodRS256, jwt.RegisteredClaims{Subject: "alice", ExpiresAt: future}),
			expectSuccess: false,
		},
		{
			name:           "valid api key",
			header:         "ApiKey " + testAPIKey,
			expectSuccess:  true,
			expectedType:   "apikey",
			expectedCaller: expectedCaller,
		},
		{
			name:          "unknown api key",
			header:        "ApiKey nope",
			expectSuccess: false,
		},
		{
			name:          "missing header",
			header:        "",
			expectSuccess: false,
		},
		{
			name:          "malformed header",
			header:        "Bearer",
			expectSuccess: false,
		},
		{
			name:          "unsupported scheme",
			header:        "Basic dXNlcjpwYXNz",
			expectSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.Authenticate(tt.header)
			assert.Equal(t, tt.expectSuccess, result.Success)
			if !tt.expectSuccess {
				assert.Error(t, result.Error)
				return
			}
			assert.NoError(t, result.Error)
			assert.Equal(t, tt.expectedType, result.AuthType)
			assert.Equal(t, tt.expectedCaller, result.Caller)
		})
	}
}

func TestAuth_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	a, err := middleware.NewAuthenticator(middleware.AuthConfig{
		APIKeys: map[string]string{testAPIKey: testCaller},
	})
	require.NoError(t, err)

	router := gin.New()
	router.POST("/protected", middleware.Auth(a), func(c *gin.Context) {
		caller, ok := identity.CallerFromContext(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, caller.String())
	})

	t.Run("authenticated caller reaches the handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		req.Header.Set("Authorization", "ApiKey "+testAPIKey)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		expected, _ := domain.NormalizeAddress(testCaller)
		assert.Equal(t, expected.String(), w.Body.String())
	})

	t.Run("missing credentials are rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "unauthorized")
	})
}
