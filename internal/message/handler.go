// AngelaMos | 2026
// handler.go

package message

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/go-messages/internal/config"
	"github.com/carterperez-dev/templates/go-messages/internal/core"
	"github.com/carterperez-dev/templates/go-messages/internal/store"
	"github.com/carterperez-dev/templates/go-messages/internal/user"
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
	r.Route("/messages", func(r chi.Router) {
		r.Post("/", h.CreateMessage)
		r.Get("/sender/{senderID}", h.GetMessagesBySender)
		r.Get("/{messageID}", h.GetMessage)
		r.Delete("/{messageID}", h.DeleteMessage)
	})
}

func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationError(core.FormatValidationError(err)))
		return
	}

	senderID, err := core.ParseID(req.SenderID)
	if err != nil {
		core.BadRequest(w, "invalid sender id")
		return
	}

	msg, err := h.service.CreateMessage(r.Context(), CreateInput{
		SenderID: senderID,
		Content:  req.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToMessageResponse(msg))
}

func (h *Handler) GetMessagesBySender(w http.ResponseWriter, r *http.Request) {
	senderID, err := core.ParseID(chi.URLParam(r, "senderID"))
	if err != nil {
		core.BadRequest(w, "invalid sender id")
		return
	}

	params := core.ParsePageParams(r, h.paging)

	msgs, total, err := h.service.GetMessagesBySenderID(
		r.Context(),
		senderID,
		store.Page{Limit: params.Limit, Offset: params.Offset},
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, MessagePageResponse{
		Count:    total,
		Messages: ToMessageResponseList(msgs),
	})
}

func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "messageID"))
	if err != nil {
		core.BadRequest(w, "invalid message id")
		return
	}

	msg, err := h.service.GetMessage(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToMessageResponse(msg))
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "messageID"))
	if err != nil {
		core.BadRequest(w, "invalid message id")
		return
	}

	if err := h.service.DeleteMessage(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	core.NoContent(w)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		core.NotFound(w, "sender")
	case errors.Is(err, ErrNotFound):
		core.NotFound(w, "message")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid request")
	default:
		core.InternalServerError(w, err)
	}
}
