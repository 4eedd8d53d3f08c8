package service

import (
	"context"
	"errors"

	"globetrotter/internal/apperr"
	"globetrotter/internal/model"
	"globetrotter/internal/repository"
)

type tripStore interface {
	Create(ctx context.Context, trip *model.Trip) (int, error)
	GetByID(ctx context.Context, id int) (*model.Trip, error)
	ListWithOwners(ctx context.Context) ([]model.TripWithOwner, error)
	ListAll(ctx context.Context) ([]model.Trip, error)
	ListByUser(ctx context.Context, userID int) ([]model.Trip, error)
	Delete(ctx context.Context, id int) error
}

// TripService содержит бизнес-логику, связанную с планированием поездок.
type TripService struct {
	tripRepo tripStore
}

// NewTripService создает новый сервис для работы с поездками.
func NewTripService(tripRepo tripStore) *TripService {
	return &TripService{tripRepo: tripRepo}
}

// CreateTripInput - данные новой поездки.
type CreateTripInput struct {
	Destination string
	StartDate   string
	EndDate     string
	UserID      int
}

// CreateTrip создает поездку и вычисляет ее длительность в днях.
// Создать поездку можно только для себя; администратор может создавать для любого пользователя.
func (s *TripService) CreateTrip(ctx context.Context, actor Actor, in CreateTripInput) (int, error) {
	if blank(in.Destination) || blank(in.StartDate) || blank(in.EndDate) || in.UserID == 0 {
		return 0, apperr.NewValidation("All fields are required")
	}
	uid := in.UserID
	if !actor.CanManage(&uid) {
		return 0, apperr.NewForbidden("You can only create trips for yourself")
	}

	start, err := ParseTripDate(in.StartDate)
	if err != nil {
		return 0, apperr.NewValidation("Invalid startDate")
	}
	end, err := ParseTripDate(in.EndDate)
	if err != nil {
		return 0, apperr.NewValidation("Invalid endDate")
	}

	trip := &model.Trip{
		Destination: in.Destination,
		Duration:    FormatDuration(DurationDays(start, end)),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		UserID:      &uid,
	}
	id, err := s.tripRepo.Create(ctx, trip)
	if err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return 0, apperr.NewNotFound("User not found")
		}
		return 0, apperr.NewInternal("Failed to create trip", err)
	}
	return id, nil
}

// GetTrip возвращает поездку по ID.
func (s *TripService) GetTrip(ctx context.Context, id int) (*model.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Trip not found", "Failed to fetch trip")
	}
	return trip, nil
}

// ListTrips возвращает все поездки с именами владельцев.
func (s *TripService) ListTrips(ctx context.Context) ([]model.TripWithOwner, error) {
	trips, err := s.tripRepo.ListWithOwners(ctx)
	if err != nil {
		return nil, apperr.NewInternal("Failed to fetch trips", err)
	}
	return trips, nil
}

// ListAllTrips возвращает все поездки, включая поездки без владельца.
func (s *TripService) ListAllTrips(ctx context.Context) ([]model.Trip, error) {
	trips, err := s.tripRepo.ListAll(ctx)
	if err != nil {
		return nil, apperr.NewInternal("Failed to fetch trips", err)
	}
	return trips, nil
}

// ListUserTrips возвращает поездки одного пользователя.
func (s *TripService) ListUserTrips(ctx context.Context, userID int) ([]model.Trip, error) {
	trips, err := s.tripRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.NewInternal("Failed to fetch user trips", err)
	}
	return trips, nil
}

// DeleteTrip удаляет поездку вместе с ее маршрутом. Удалять может владелец или администратор.
func (s *TripService) DeleteTrip(ctx context.Context, actor Actor, id int) error {
	trip, err := s.GetTrip(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(trip.UserID) {
		return apperr.NewForbidden("You can only delete your own trips")
	}
	if err := s.tripRepo.Delete(ctx, id); err != nil {
		return storeError(err, "Trip not found", "Failed to delete trip")
	}
	return nil
}
