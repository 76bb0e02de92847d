// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
	"github.com/mahdiwhb/DEALEXPRESS/internal/policy"
)

type stubVerifier struct {
	identities map[string]*Identity
}

func (s *stubVerifier) VerifyToken(
	_ context.Context,
	token string,
) (*Identity, error) {
	if identity, ok := s.identities[token]; ok {
		return identity, nil
	}
	return nil, fmt.Errorf("verify: %w", core.ErrTokenInvalid)
}

func newVerifier() *stubVerifier {
	return &stubVerifier{identities: map[string]*Identity{
		"good-token":  {UserID: "user-1", Role: "user"},
		"mod-token":   {UserID: "mod-1", Role: "moderator"},
		"admin-token": {UserID: "admin-1", Role: "admin"},
	}}
}

func echoIdentity(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-User-ID", GetUserID(r.Context()))
	w.Header().Set("X-User-Role", GetUserRole(r.Context()))
	w.WriteHeader(http.StatusOK)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", ""},
		{"bearer token", "Bearer abc123", "abc123"},
		{"case-insensitive scheme", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
		{"surrounding whitespace", "Bearer  abc123", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractToken(r))
		})
	}
}

func TestAuthenticator(t *testing.T) {
	handler := Authenticator(newVerifier())(http.HandlerFunc(echoIdentity))

	t.Run("valid token attaches identity", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", w.Header().Get("X-User-ID"))
		assert.Equal(t, "user", w.Header().Get("X-User-Role"))
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "message")
	})

	t.Run("unknown token is unauthorized", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer forged")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	handler := OptionalAuth(newVerifier())(http.HandlerFunc(echoIdentity))

	t.Run("valid token attaches identity", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer mod-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "mod-1", w.Header().Get("X-User-ID"))
	})

	t.Run("no token proceeds anonymously", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-User-ID"))
	})

	t.Run("bad token proceeds anonymously", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer forged")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-User-ID"))
	})
}

func TestRequireRole(t *testing.T) {
	verifier := newVerifier()

	build := func(gate func(http.Handler) http.Handler) http.Handler {
		return Authenticator(verifier)(gate(http.HandlerFunc(echoIdentity)))
	}

	send := func(h http.Handler, token string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	t.Run("moderator gate admits moderators and admins", func(t *testing.T) {
		handler := build(RequireModerator)

		assert.Equal(t, http.StatusOK, send(handler, "mod-token").Code)
		assert.Equal(t, http.StatusOK, send(handler, "admin-token").Code)
		assert.Equal(t, http.StatusForbidden, send(handler, "good-token").Code)
	})

	t.Run("admin gate excludes moderators", func(t *testing.T) {
		handler := build(RequireAdmin)

		assert.Equal(t, http.StatusOK, send(handler, "admin-token").Code)
		assert.Equal(t, http.StatusForbidden, send(handler, "mod-token").Code)
		assert.Equal(t, http.StatusForbidden, send(handler, "good-token").Code)
	})

	t.Run("unauthenticated request never reaches the gate", func(t *testing.T) {
		handler := build(RequireAdmin)

		assert.Equal(t, http.StatusUnauthorized, send(handler, "").Code)
	})
}

func TestActorFromContext(t *testing.T) {
	t.Run("empty context yields anonymous actor", func(t *testing.T) {
		actor := ActorFromContext(context.Background())
		assert.True(t, actor.IsAnonymous())
	})

	t.Run("populated context yields full actor", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDKey, "user-9")
		ctx = context.WithValue(ctx, UserRoleKey, "moderator")

		actor := ActorFromContext(ctx)
		assert.Equal(t, "user-9", actor.ID)
		assert.Equal(t, policy.RoleModerator, actor.Role)
		assert.True(t, actor.IsModerator())
	})
}
