// AngelaMos | 2026
// handler.go

package deal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
	"github.com/mahdiwhb/DEALEXPRESS/internal/middleware"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the public deal surface. Reads take optional
// authentication so moderators get unfiltered results over the same
// routes; writes require it.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.With(optionalAuth).Get("/deals", h.List)
	r.With(optionalAuth).Get("/deals/search", h.Search)
	r.With(optionalAuth).Get("/deals/{dealID}", h.Get)

	r.With(authenticator).Post("/deals", h.Create)
	r.With(authenticator).Put("/deals/{dealID}", h.Update)
	r.With(authenticator).Delete("/deals/{dealID}", h.Delete)
}

// RegisterAdminRoutes mounts the moderation queue under the admin
// subtree; the moderatorOnly gate admits moderators and admins.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	moderatorOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/deals", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(moderatorOnly)

		r.Get("/pending", h.ListPending)
		r.Patch("/{dealID}/moderate", h.Moderate)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	resp, err := h.service.CreateDeal(r.Context(), actor, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListDealsParams{
		Page:  parseIntQuery(r, "page"),
		Limit: parseIntQuery(r, "limit"),
	}
	params.Normalize()

	actor := middleware.ActorFromContext(r.Context())

	deals, total, err := h.service.ListDeals(r.Context(), actor, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, deals, params.Page, params.Limit, total)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	resp, err := h.service.SearchDeals(
		r.Context(),
		actor,
		r.URL.Query().Get("q"),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	resp, err := h.service.GetDeal(
		r.Context(),
		actor,
		chi.URLParam(r, "dealID"),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	resp, err := h.service.UpdateDeal(
		r.Context(),
		actor,
		chi.URLParam(r, "dealID"),
		req,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	err := h.service.DeleteDeal(r.Context(), actor, chi.URLParam(r, "dealID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "deal deleted"})
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	deals, err := h.service.ListPendingDeals(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, deals)
}

func (h *Handler) Moderate(w http.ResponseWriter, r *http.Request) {
	var req ModerateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	resp, err := h.service.ModerateDeal(
		r.Context(),
		actor,
		chi.URLParam(r, "dealID"),
		req.Status,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, resp)
}

// writeServiceError maps sentinel failures onto the wire taxonomy.
// State violations and bad input are client errors; hidden deals
// surface as not found.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "deal")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	case errors.Is(err, core.ErrInvalidInput),
		errors.Is(err, core.ErrInvalidState):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}

func parseIntQuery(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
