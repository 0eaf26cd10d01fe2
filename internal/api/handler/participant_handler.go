package handler

import (
	"context"
	"net/http"

	"medicamp_api/internal/api/middleware"
	"medicamp_api/internal/app/service"
	"medicamp_api/internal/common"
	"medicamp_api/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type ParticipantService interface {
	RegisterParticipant(ctx context.Context, campIDHex, callerEmail string, req service.RegisterRequest) (*model.Registration, error)
	CancelParticipant(ctx context.Context, participantIDHex, campIDHex string) (*model.Cancellation, error)
	ConfirmParticipant(ctx context.Context, participantIDHex string) error
	ListParticipants(ctx context.Context, q model.PageQuery) (*model.Page[model.ParticipantView], error)
}

type ParticipantHandler struct {
	participantService ParticipantService
	adminOnly          func(http.Handler) http.Handler
}

func NewParticipantHandler(participantService ParticipantService, adminOnly func(http.Handler) http.Handler) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService, adminOnly: adminOnly}
}

func (h *ParticipantHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(auth chi.Router) {
		auth.Use(middleware.Authenticator)
		auth.Post("/participants/{id}", h.register)
		auth.Delete("/delete-participant/{id}/{campID}", h.cancel)
		auth.With(middleware.OwnerOnly("email")).Get("/participant/{email}", h.listForUser)

		auth.Group(func(admin chi.Router) {
			admin.Use(h.adminOnly)
			admin.Get("/participants", h.listAll)
			admin.Patch("/confirmation-participant/{id}", h.confirm)
		})
	})
}

func (h *ParticipantHandler) register(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	var req service.RegisterRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	reg, err := h.participantService.RegisterParticipant(r.Context(), chi.URLParam(r, "id"), email, req)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "Successfully participated in the camp", reg)
}

func (h *ParticipantHandler) cancel(w http.ResponseWriter, r *http.Request) {
	res, err := h.participantService.CancelParticipant(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "campID"))
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "Participant registration cancelled", res)
}

func (h *ParticipantHandler) confirm(w http.ResponseWriter, r *http.Request) {
	if err := h.participantService.ConfirmParticipant(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "Participant confirmed", nil)
}

func (h *ParticipantHandler) listAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "")
}

func (h *ParticipantHandler) listForUser(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, middleware.EmailParam(r, "email"))
}

func (h *ParticipantHandler) list(w http.ResponseWriter, r *http.Request, email string) {
	page, err := h.participantService.ListParticipants(r.Context(), model.PageQuery{
		Email:  email,
		Search: r.URL.Query().Get("search"),
		Page:   queryPage(r),
	})
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	respondWithPage(w, "Participants fetching success", page.Items, int64(page.Total))
}
