// AngelaMos | 2026
// handler_test.go

package deal

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

func asModerator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.UserIDKey, "mod-1")
		ctx = context.WithValue(
			ctx,
			middleware.UserRoleKey,
			string(policy.RoleModerator),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func allowAll(next http.Handler) http.Handler {
	return next
}

func newAdminRouter(repo *stubRepo) chi.Router {
	handler := NewHandler(newTestService(repo))

	r := chi.NewRouter()
	handler.RegisterAdminRoutes(r, asModerator, allowAll)
	return r
}

func TestListPendingReturnsBareArray(t *testing.T) {
	repo := newStubRepo(
		testDeal("deal-1", "author-1", policy.StatusPending),
		testDeal("deal-2", "author-2", policy.StatusApproved),
	)
	router := newAdminRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/admin/deals/pending", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var deals []DealResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deals))
	require.Len(t, deals, 1)
	assert.Equal(t, "deal-1", deals[0].ID)
	assert.Equal(t, string(policy.StatusPending), deals[0].Status)
}

func TestListPendingEmptyIsEmptyArray(t *testing.T) {
	router := newAdminRouter(newStubRepo())

	req := httptest.NewRequest(http.MethodGet, "/admin/deals/pending", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
