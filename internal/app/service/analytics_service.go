package service

import (
	"context"

	"medicamp_api/internal/domain/model"
	"medicamp_api/internal/domain/repository"

	"golang.org/x/sync/errgroup"
)

type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

// Overview runs the four dashboard aggregates concurrently. The first failure
// cancels the others and is returned.
func (s *AnalyticsService) Overview(ctx context.Context) (*model.AnalyticsOverview, error) {
	var (
		participants int
		revenue      float64
		camps        int
		feedbacks    []model.CampFeedbackCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		participants, err = s.analyticsRepo.TotalParticipants(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		revenue, err = s.analyticsRepo.TotalRevenue(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		camps, err = s.analyticsRepo.TotalCamps(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		feedbacks, err = s.analyticsRepo.FeedbackCounts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if feedbacks == nil {
		feedbacks = []model.CampFeedbackCount{}
	}
	// Counters can drift below zero through unconditional cancellations.
	if participants < 0 {
		participants = 0
	}
	return &model.AnalyticsOverview{
		TotalParticipants: participants,
		TotalRevenue:      revenue,
		TotalCamps:        camps,
		FeedbackCounts:    feedbacks,
	}, nil
}
