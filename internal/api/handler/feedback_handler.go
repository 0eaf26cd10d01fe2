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

type FeedbackService interface {
	CreateFeedback(ctx context.Context, callerEmail string, req service.CreateFeedbackRequest) (*model.Feedback, error)
	ListFeedbacks(ctx context.Context) ([]model.Feedback, error)
	ListFeedbacksForCamp(ctx context.Context, campIDHex string) ([]model.Feedback, error)
}

type FeedbackHandler struct {
	feedbackService FeedbackService
}

func NewFeedbackHandler(feedbackService FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) RegisterRoutes(r chi.Router) {
	r.Get("/feedbacks", h.listFeedbacks)
	r.Get("/feedback/{id}", h.listCampFeedbacks)
	r.With(middleware.Authenticator).Post("/feedback", h.createFeedback)
}

func (h *FeedbackHandler) createFeedback(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	var req service.CreateFeedbackRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	f, err := h.feedbackService.CreateFeedback(r.Context(), email, req)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, "Feedback submitted", f)
}

func (h *FeedbackHandler) listFeedbacks(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.feedbackService.ListFeedbacks(r.Context())
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "Feedbacks fetching success", feedbacks)
}

func (h *FeedbackHandler) listCampFeedbacks(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.feedbackService.ListFeedbacksForCamp(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "Feedbacks fetching success", feedbacks)
}
