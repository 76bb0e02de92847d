// AngelaMos | 2026
// handler.go

package comment

import (
	"encoding/json"
	"errors"
	"net/http"

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.With(optionalAuth).Get("/deals/{dealID}/comments", h.List)
	r.With(authenticator).Post("/deals/{dealID}/comments", h.Create)

	r.With(authenticator).Put("/comments/{commentID}", h.Update)
	r.With(authenticator).Delete("/comments/{commentID}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	comments, err := h.service.ListComments(
		r.Context(),
		actor,
		chi.URLParam(r, "dealID"),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, comments)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	resp, err := h.service.CreateComment(
		r.Context(),
		actor,
		chi.URLParam(r, "dealID"),
		req,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	resp, err := h.service.UpdateComment(
		r.Context(),
		actor,
		chi.URLParam(r, "commentID"),
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

	err := h.service.DeleteComment(
		r.Context(),
		actor,
		chi.URLParam(r, "commentID"),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "comment deleted"})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.JSONError(w, core.NotFoundError("resource"))
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	default:
		core.InternalServerError(w, err)
	}
}
