// AngelaMos | 2026
// handler.go

package user

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/go-messages/internal/config"
	"github.com/carterperez-dev/templates/go-messages/internal/core"
	"github.com/carterperez-dev/templates/go-messages/internal/store"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
	paging    config.PagingConfig
}

func NewHandler(service *Service, paging config.PagingConfig) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
		paging:    paging,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
		r.Get("/email/{email}", h.GetUserByEmail)
		r.Get("/{userID}", h.GetUser)
		r.Patch("/{userID}", h.UpdateUser)
		r.Delete("/{userID}", h.DeleteUser)
	})
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationError(core.FormatValidationError(err)))
		return
	}

	user, err := h.service.CreateUser(r.Context(), CreateInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToUserResponse(user))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := core.ParsePageParams(r, h.paging)

	users, total, err := h.service.ListUsers(r.Context(), store.Page{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	core.Paginated(
		w,
		UserListResponse{Users: ToUserResponseList(users)},
		params.Limit,
		params.Offset,
		total,
	)
}

func (h *Handler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when the client escaped the segment.
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		core.BadRequest(w, "invalid email")
		return
	}

	user, err := h.service.GetUserByEmail(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	if user == nil {
		core.NotFound(w, "user")
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "userID"))
	if err != nil {
		core.BadRequest(w, "invalid user id")
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "userID"))
	if err != nil {
		core.BadRequest(w, "invalid user id")
		return
	}

	var req UpdateUserRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationError(core.FormatValidationError(err)))
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, req.Patch())
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "userID"))
	if err != nil {
		core.BadRequest(w, "invalid user id")
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	core.NoContent(w)
}

func writeError(w http.ResponseWriter, err error) {
	var exists *AlreadyExistsError

	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "user")
	case errors.As(err, &exists):
		core.JSONError(w, core.AlreadyExistsError(exists.Error()))
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid request")
	default:
		core.InternalServerError(w, err)
	}
}
