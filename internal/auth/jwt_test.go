// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiwhb/DEALEXPRESS/internal/config"
	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
)

func newTestManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privatePath,
		PublicKeyPath:     publicPath,
		AccessTokenExpire: expire,
		Issuer:            "dealexpress",
		Audience:          "dealexpress-api",
	})
	require.NoError(t, err)

	return manager
}

func TestCreateAndParseToken(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	token, err := manager.CreateToken("user-42", "moderator")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "moderator", claims.Role)
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(
		t,
		time.Now().Add(time.Hour),
		claims.ExpiresAt,
		time.Minute,
	)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	manager := newTestManager(t, -time.Minute)

	token, err := manager.CreateToken("user-42", "user")
	require.NoError(t, err)

	_, err = manager.ParseToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestParseTokenRejectsForeignKey(t *testing.T) {
	issuer := newTestManager(t, time.Hour)
	verifier := newTestManager(t, time.Hour)

	token, err := issuer.CreateToken("user-42", "user")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	for _, garbage := range []string{"", "abc", "a.b.c"} {
		_, err := manager.ParseToken(garbage)
		require.Error(t, err, garbage)
		assert.ErrorIs(t, err, core.ErrTokenInvalid)
	}
}

func TestTokensCarryUniqueIDs(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	first, err := manager.CreateToken("user-42", "user")
	require.NoError(t, err)

	second, err := manager.CreateToken("user-42", "user")
	require.NoError(t, err)

	firstClaims, err := manager.ParseToken(first)
	require.NoError(t, err)

	secondClaims, err := manager.ParseToken(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.TokenID, secondClaims.TokenID)
}

func TestJWKSHandler(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil)
	w := httptest.NewRecorder()

	manager.GetJWKSHandler()(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Keys, 1)

	key := body.Keys[0]
	assert.Equal(t, "EC", key["kty"])
	assert.Equal(t, manager.GetKeyID(), key["kid"])
	assert.NotContains(t, key, "d")
}
