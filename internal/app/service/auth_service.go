package service

import (
	"context"
	"fmt"
	"strings"

	"medicamp_api/internal/common"
	"medicamp_api/internal/common/security"
)

type AuthService struct {
	tokens *security.TokenAuth
}

func NewAuthService(tokens *security.TokenAuth) *AuthService {
	return &AuthService{tokens: tokens}
}

type TokenRequest struct {
	Email string `json:"email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// IssueToken signs a short-lived token for the submitted identity. The
// identity provider lives on the client, so the email is taken as given.
func (s *AuthService) IssueToken(_ context.Context, req TokenRequest) (*TokenResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, common.Errorf("email is required: %w", common.ErrBadRequest)
	}
	token, err := s.tokens.Sign(email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &TokenResponse{Token: token}, nil
}
