package handler

import (
	"context"
	"net/http"

	"medicamp_api/internal/api/middleware"
	"medicamp_api/internal/app/service"
	"medicamp_api/internal/common"
	"medicamp_api/internal/domain/model"
	"medicamp_api/internal/platform/payment"

	"github.com/go-chi/chi/v5"
)

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, req service.IntentRequest) (*payment.Intent, error)
	RecordPayment(ctx context.Context, participantIDHex, callerEmail string, req service.RecordPaymentRequest) (*model.PaymentRecord, error)
	PaymentHistory(ctx context.Context, q model.PageQuery) (*model.Page[model.PaymentView], error)
}

type PaymentHandler struct {
	paymentService PaymentService
}

func NewPaymentHandler(paymentService PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(auth chi.Router) {
		auth.Use(middleware.Authenticator)
		auth.Post("/create-confirm-intent", h.createIntent)
		auth.Post("/payments/{id}", h.recordPayment)
		auth.With(middleware.OwnerOnly("email")).Get("/payments-history/{email}", h.history)
	})
}

type intentResponse struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	ClientSecret string          `json:"clientSecret"`
	Data         *payment.Intent `json:"data"`
}

func (h *PaymentHandler) createIntent(w http.ResponseWriter, r *http.Request) {
	var req service.IntentRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	intent, err := h.paymentService.CreatePaymentIntent(r.Context(), req)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, intentResponse{
		Success:      true,
		Message:      "Payment intent created",
		ClientSecret: intent.ClientSecret,
		Data:         intent,
	})
}

func (h *PaymentHandler) recordPayment(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	var req service.RecordPaymentRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	rec, err := h.paymentService.RecordPayment(r.Context(), chi.URLParam(r, "id"), email, req)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, "Payment recorded", rec)
}

func (h *PaymentHandler) history(w http.ResponseWriter, r *http.Request) {
	page, err := h.paymentService.PaymentHistory(r.Context(), model.PageQuery{
		Email:  middleware.EmailParam(r, "email"),
		Search: r.URL.Query().Get("search"),
		Page:   queryPage(r),
	})
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	respondWithPage(w, "Payment history fetching success", page.Items, int64(page.Total))
}
