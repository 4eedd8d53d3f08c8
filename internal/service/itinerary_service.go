package service

import (
	"context"
	"sort"

	"globetrotter/internal/apperr"
	"globetrotter/internal/model"
)

type itineraryStore interface {
	Add(ctx context.Context, item *model.ItineraryItem) (int, error)
	ListByTrip(ctx context.Context, tripID int) ([]model.ItineraryItem, error)
}

type tripGetter interface {
	GetByID(ctx context.Context, id int) (*model.Trip, error)
}

// ItineraryService управляет пунктами маршрута поездки.
type ItineraryService struct {
	itemRepo itineraryStore
	tripRepo tripGetter
}

// NewItineraryService создает новый сервис маршрутов.
func NewItineraryService(itemRepo itineraryStore, tripRepo tripGetter) *ItineraryService {
	return &ItineraryService{itemRepo: itemRepo, tripRepo: tripRepo}
}

// AddItemInput - данные нового пункта маршрута.
type AddItemInput struct {
	TripID       int
	POIName      string
	POICategory  *string
	POIPhotoURL  *string
	ScheduledDay *int
	Notes        *string
}

// AddItem добавляет точку интереса в маршрут. Проверки на дубликаты нет.
func (s *ItineraryService) AddItem(ctx context.Context, actor Actor, in AddItemInput) (int, error) {
	if in.TripID == 0 || blank(in.POIName) {
		return 0, apperr.NewValidation("trip_id and poi_name are required")
	}
	trip, err := s.tripRepo.GetByID(ctx, in.TripID)
	if err != nil {
		return 0, storeError(err, "Trip not found", "Failed to add item to itinerary")
	}
	if !actor.CanManage(trip.UserID) {
		return 0, apperr.NewForbidden("You can only edit your own trips")
	}

	id, err := s.itemRepo.Add(ctx, &model.ItineraryItem{
		TripID:       in.TripID,
		POIName:      in.POIName,
		POICategory:  in.POICategory,
		POIPhotoURL:  in.POIPhotoURL,
		ScheduledDay: in.ScheduledDay,
		Notes:        in.Notes,
	})
	if err != nil {
		return 0, apperr.NewInternal("Failed to add item to itinerary", err)
	}
	return id, nil
}

// ListItems возвращает пункты маршрута по возрастанию дня.
// Для несуществующей поездки возвращается пустой список.
func (s *ItineraryService) ListItems(ctx context.Context, tripID int) ([]model.ItineraryItem, error) {
	items, err := s.itemRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, apperr.NewInternal("Failed to fetch itinerary", err)
	}
	return items, nil
}

// ListDays возвращает маршрут, сгруппированный по дням.
func (s *ItineraryService) ListDays(ctx context.Context, tripID int) ([]model.ItineraryDay, error) {
	items, err := s.ListItems(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return GroupByDay(items), nil
}

// GroupByDay группирует пункты по дню; пункты без дня относятся к первому дню.
// Порядок внутри дня сохраняется.
func GroupByDay(items []model.ItineraryItem) []model.ItineraryDay {
	byDay := map[int][]model.ItineraryItem{}
	for _, it := range items {
		day := 1
		if it.ScheduledDay != nil {
			day = *it.ScheduledDay
		}
		byDay[day] = append(byDay[day], it)
	}

	days := make([]model.ItineraryDay, 0, len(byDay))
	for day, list := range byDay {
		days = append(days, model.ItineraryDay{Day: day, Items: list})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}
