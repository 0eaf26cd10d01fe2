package handler

import (
	"context"
	"net/http"

	"medicamp_api/internal/app/service"
	"medicamp_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type TokenIssuer interface {
	IssueToken(ctx context.Context, req service.TokenRequest) (*service.TokenResponse, error)
}

type AuthHandler struct {
	authService TokenIssuer
}

func NewAuthHandler(authService TokenIssuer) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/jwt", h.issueToken)
}

type tokenResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, r *http.Request) {
	var req service.TokenRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	resp, err := h.authService.IssueToken(r.Context(), req)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, tokenResponse{
		Success: true,
		Message: "Successfully JWT Token generated",
		Token:   resp.Token,
	})
}
