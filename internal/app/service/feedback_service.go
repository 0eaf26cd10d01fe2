package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medicamp_api/internal/common"
	"medicamp_api/internal/domain/model"
	"medicamp_api/internal/domain/repository"
)

type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	now          func() time.Time
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{feedbackRepo: feedbackRepo, now: time.Now}
}

type CreateFeedbackRequest struct {
	CampID  string `json:"campId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Photo   string `json:"photo"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *FeedbackService) CreateFeedback(ctx context.Context, callerEmail string, req CreateFeedbackRequest) (*model.Feedback, error) {
	campID, err := parseID(req.CampID, "camp")
	if err != nil {
		return nil, err
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, common.Errorf("rating must be between 1 and 5: %w", common.ErrValidation)
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = callerEmail
	}

	f := &model.Feedback{
		CampID:    campID,
		Name:      req.Name,
		Email:     email,
		Photo:     req.Photo,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedAt: s.now().UTC(),
	}
	if err := s.feedbackRepo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to store feedback: %w", err)
	}
	return f, nil
}

func (s *FeedbackService) ListFeedbacks(ctx context.Context) ([]model.Feedback, error) {
	return s.feedbackRepo.List(ctx)
}

func (s *FeedbackService) ListFeedbacksForCamp(ctx context.Context, campIDHex string) ([]model.Feedback, error) {
	campID, err := parseID(campIDHex, "camp")
	if err != nil {
		return nil, err
	}
	return s.feedbackRepo.ListByCamp(ctx, campID)
}
