// AngelaMos | 2026
// handler_test.go

package comment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiwhb/DEALEXPRESS/internal/middleware"
	"github.com/mahdiwhb/DEALEXPRESS/internal/policy"
)

func passthrough(next http.Handler) http.Handler {
	return next
}

func asUser(id string, role policy.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIDKey, id)
			ctx = context.WithValue(ctx, middleware.UserRoleKey, string(role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(repo *stubCommentRepo) chi.Router {
	svc := newTestService(repo, policy.StatusApproved)
	handler := NewHandler(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r, asUser("commenter-1", policy.RoleUser), passthrough)
	return r
}

func TestListCommentsReturnsBareArray(t *testing.T) {
	repo := newStubCommentRepo(
		testComment("comment-1", "commenter-1"),
		testComment("comment-2", "user-2"),
	)
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/deals/deal-1/comments", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var comments []CommentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	require.Len(t, comments, 2)

	ids := []string{comments[0].ID, comments[1].ID}
	assert.ElementsMatch(t, []string{"comment-1", "comment-2"}, ids)
}

func TestListCommentsEmptyIsEmptyArray(t *testing.T) {
	router := newTestRouter(newStubCommentRepo())

	req := httptest.NewRequest(http.MethodGet, "/deals/deal-1/comments", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
