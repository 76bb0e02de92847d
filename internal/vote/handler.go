// AngelaMos | 2026
// handler.go

package vote

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
) {
	r.With(authenticator).Post("/deals/{dealID}/vote", h.Cast)
	r.With(authenticator).Delete("/deals/{dealID}/vote", h.Remove)
}

func (h *Handler) Cast(w http.ResponseWriter, r *http.Request) {
	var req CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	resp, err := h.service.CastVote(
		r.Context(),
		actor,
		chi.URLParam(r, "dealID"),
		req.Type,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	resp, err := h.service.RemoveVote(
		r.Context(),
		actor,
		chi.URLParam(r, "dealID"),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp.Message = "vote removed"
	core.OK(w, resp)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.JSONError(w, core.NotFoundError("deal or vote"))
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}
