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
)

type UserService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo, now: time.Now}
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Photo string `json:"photo"`
	Phone string `json:"phone"`
}

// CreateUser inserts the user unless the email is already registered. The
// bool result is false when the user already existed. New users always start
// with the user role.
func (s *UserService) CreateUser(ctx context.Context, email string, req CreateUserRequest) (*model.User, bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, false, common.Errorf("email is required: %w", common.ErrBadRequest)
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	user := &model.User{
		Email:     email,
		Name:      req.Name,
		Photo:     req.Photo,
		Phone:     req.Phone,
		Role:      model.RoleUser,
		CreatedAt: s.now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, common.ErrConflict) {
			winner, ferr := s.userRepo.FindByEmail(ctx, email)
			if ferr != nil {
				return nil, false, fmt.Errorf("failed to look up user: %w", ferr)
			}
			return winner, false, nil
		}
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	return user, true, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// GetUser returns nil without error when no user has this email.
func (s *UserService) GetUser(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

func (s *UserService) UpdateUser(ctx context.Context, email string, update model.UserUpdate) error {
	if update.IsEmpty() {
		return common.Errorf("no updatable fields supplied: %w", common.ErrBadRequest)
	}
	return s.userRepo.Update(ctx, email, update)
}

func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := s.RoleOf(ctx, email)
	if err != nil {
		return false, err
	}
	return role == model.RoleAdmin, nil
}

// RoleOf returns the stored role, or "" for unknown emails.
func (s *UserService) RoleOf(ctx context.Context, email string) (string, error) {
	user, err := s.GetUser(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}
	return user.Role, nil
}
