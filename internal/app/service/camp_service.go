package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medicamp_api/internal/common"
	"medicamp_api/internal/domain/model"
	"medicamp_api/internal/domain/repository"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type CampService struct {
	campRepo repository.CampRepository
	now      func() time.Time
}

func NewCampService(campRepo repository.CampRepository) *CampService {
	return &CampService{campRepo: campRepo, now: time.Now}
}

type CreateCampRequest struct {
	CampName               string  `json:"campName"`
	Image                  string  `json:"image"`
	CampFees               float64 `json:"campFees"`
	Date                   string  `json:"date"`
	Time                   string  `json:"time"`
	Location               string  `json:"location"`
	HealthcareProfessional string  `json:"healthcareProfessional"`
	Description            string  `json:"description"`
}

// parseID converts a hex path parameter into an ObjectID.
func parseID(hex, what string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("invalid %s id %q: %w", what, hex, common.ErrBadRequest)
	}
	return id, nil
}

func validateDate(date string) error {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD, got %q: %w", date, common.ErrValidation)
	}
	return nil
}

func (s *CampService) ListCamps(ctx context.Context, q model.CampListQuery) ([]model.Camp, int64, error) {
	return s.campRepo.List(ctx, q)
}

// GetCamp accepts an ObjectID hex or a slug. A missing camp yields nil.
func (s *CampService) GetCamp(ctx context.Context, idOrSlug string) (*model.Camp, error) {
	var (
		camp *model.Camp
		err  error
	)
	if id, parseErr := bson.ObjectIDFromHex(idOrSlug); parseErr == nil {
		camp, err = s.campRepo.FindByID(ctx, id)
	} else {
		camp, err = s.campRepo.FindBySlug(ctx, idOrSlug)
	}
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return camp, err
}

// RecentCamps returns the latest camps that already took place.
func (s *CampService) RecentCamps(ctx context.Context) ([]model.Camp, error) {
	today := s.now().UTC().Format(model.DateLayout)
	return s.campRepo.ListBefore(ctx, today, repository.RecentCampLimit)
}

func (s *CampService) CreateCamp(ctx context.Context, req CreateCampRequest) (*model.Camp, error) {
	if strings.TrimSpace(req.CampName) == "" || strings.TrimSpace(req.Location) == "" {
		return nil, common.Errorf("campName and location are required: %w", common.ErrValidation)
	}
	if req.CampFees < 0 {
		return nil, common.Errorf("campFees must not be negative: %w", common.ErrValidation)
	}
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}

	camp := &model.Camp{
		CampName:               strings.TrimSpace(req.CampName),
		Slug:                   slug.Make(req.CampName),
		Image:                  req.Image,
		CampFees:               req.CampFees,
		Date:                   req.Date,
		Time:                   req.Time,
		Location:               req.Location,
		HealthcareProfessional: req.HealthcareProfessional,
		Description:            req.Description,
		ParticipantCount:       0,
		CreatedAt:              s.now().UTC(),
	}
	if err := s.campRepo.Create(ctx, camp); err != nil {
		return nil, fmt.Errorf("failed to create camp: %w", err)
	}
	return camp, nil
}

// UpdateCamp applies a partial update. participantCount is never writable here.
func (s *CampService) UpdateCamp(ctx context.Context, idHex string, update model.CampUpdate) error {
	id, err := parseID(idHex, "camp")
	if err != nil {
		return err
	}
	if update.CampName != nil {
		name := strings.TrimSpace(*update.CampName)
		if name == "" {
			return common.Errorf("campName must not be empty: %w", common.ErrValidation)
		}
		campSlug := slug.Make(name)
		update.CampName = &name
		update.Slug = &campSlug
	}
	if update.CampFees != nil && *update.CampFees < 0 {
		return common.Errorf("campFees must not be negative: %w", common.ErrValidation)
	}
	if update.Date != nil {
		if err := validateDate(*update.Date); err != nil {
			return err
		}
	}
	if update == (model.CampUpdate{}) {
		return common.Errorf("no updatable fields supplied: %w", common.ErrBadRequest)
	}
	return s.campRepo.Update(ctx, id, update)
}

// DeleteCamp removes the camp document only. Participants registered for it
// stay behind and keep referencing the deleted id.
func (s *CampService) DeleteCamp(ctx context.Context, idHex string) error {
	id, err := parseID(idHex, "camp")
	if err != nil {
		return err
	}
	return s.campRepo.Delete(ctx, id)
}
