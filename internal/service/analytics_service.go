package service

import (
	"context"

	"globetrotter/internal/apperr"
	"globetrotter/internal/model"
)

// PopularDestinationsLimit - сколько направлений попадает в рейтинг.
const PopularDestinationsLimit = 5

// Возрастных данных в схеме нет, поэтому корзины всегда нулевые.
var demographicBuckets = []string{"18-24", "25-34", "35-44", "45-54", "55+"}

type analyticsStore interface {
	CountUsers(ctx context.Context) (int, error)
	CountTrips(ctx context.Context) (int, error)
	TopDestinations(ctx context.Context, limit int) ([]model.NamedValue, error)
}

// AnalyticsService собирает сводку для панели администратора.
type AnalyticsService struct {
	repo analyticsStore
}

// NewAnalyticsService создает сервис аналитики.
func NewAnalyticsService(repo analyticsStore) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// Summary возвращает счетчики на момент вызова.
func (s *AnalyticsService) Summary(ctx context.Context) (*model.Analytics, error) {
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, apperr.NewInternal("Failed to fetch analytics", err)
	}
	trips, err := s.repo.CountTrips(ctx)
	if err != nil {
		return nil, apperr.NewInternal("Failed to fetch analytics", err)
	}
	top, err := s.repo.TopDestinations(ctx, PopularDestinationsLimit)
	if err != nil {
		return nil, apperr.NewInternal("Failed to fetch analytics", err)
	}

	demographics := make([]model.NamedValue, len(demographicBuckets))
	for i, b := range demographicBuckets {
		demographics[i] = model.NamedValue{Name: b}
	}
	return &model.Analytics{
		TotalUsers:          users,
		TotalTrips:          trips,
		PopularDestinations: top,
		UserDemographics:    demographics,
		DemographicsStub:    true,
	}, nil
}
