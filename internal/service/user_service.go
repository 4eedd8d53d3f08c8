package service

import (
	"context"

	"globetrotter/internal/apperr"
	"globetrotter/internal/model"
)

type userStore interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	ListWithTripCounts(ctx context.Context) ([]model.UserWithTrips, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

// UserService содержит бизнес-логику, связанную с пользователями.
type UserService struct {
	userRepo userStore
}

// NewUserService создает новый сервис пользователей.
func NewUserService(userRepo userStore) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID возвращает пользователя по ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User not found", "Failed to fetch user")
	}
	return user, nil
}

// ListUsers возвращает всех пользователей с количеством их поездок.
func (s *UserService) ListUsers(ctx context.Context) ([]model.UserWithTrips, error) {
	users, err := s.userRepo.ListWithTripCounts(ctx)
	if err != nil {
		return nil, apperr.NewInternal("Failed to fetch users", err)
	}
	return users, nil
}

// UpdateStatus меняет статус пользователя (Active или Suspended).
func (s *UserService) UpdateStatus(ctx context.Context, id int, status string) error {
	if !model.ValidStatus(status) {
		return apperr.NewValidation("Invalid status")
	}
	if err := s.userRepo.UpdateStatus(ctx, id, status); err != nil {
		return storeError(err, "User not found", "Failed to update user status")
	}
	return nil
}
