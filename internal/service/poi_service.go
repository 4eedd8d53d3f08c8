package service

import (
	"context"
	"errors"

	"globetrotter/internal/apperr"
	"globetrotter/internal/metrics"
	"globetrotter/internal/model"
	"globetrotter/internal/poi"
)

// Поставщики точек интереса.
const (
	ProviderStatic  = "static"
	ProviderAmadeus = "amadeus"
)

// POIService ищет точки интереса по статическому каталогу или через живой сервис.
type POIService struct {
	catalog  *poi.Catalog
	live     poi.Finder // nil, если ключи Amadeus не настроены
	provider string
}

// NewPOIService создает сервис поиска. live может быть nil.
func NewPOIService(catalog *poi.Catalog, live poi.Finder, provider string) *POIService {
	return &POIService{catalog: catalog, live: live, provider: provider}
}

// StaticSearch ищет по каталогу; неизвестное направление дает список по умолчанию.
func (s *POIService) StaticSearch(destination string) []model.POI {
	metrics.ObservePOILookup(ProviderStatic, "ok")
	return s.catalog.Lookup(destination)
}

// LiveSearch ищет активности вокруг города через внешний сервис.
// Если город не найден, возвращается NotFound; сбой сервиса или сети дает Internal.
func (s *POIService) LiveSearch(ctx context.Context, city string) ([]model.POI, error) {
	if blank(city) {
		return nil, apperr.NewValidation("City is required")
	}
	if s.live == nil {
		return nil, apperr.NewInternal("poi provider not configured", nil)
	}
	pois, err := s.live.Find(ctx, city)
	if err != nil {
		if errors.Is(err, poi.ErrCityNotFound) {
			metrics.ObservePOILookup(ProviderAmadeus, "not_found")
			return nil, apperr.NewNotFound("Could not find a city named " + city)
		}
		metrics.ObservePOILookup(ProviderAmadeus, "error")
		return nil, apperr.NewInternal("Failed to fetch POIs from the provider", err)
	}
	metrics.ObservePOILookup(ProviderAmadeus, "ok")
	return pois, nil
}

// Search использует поставщика, выбранного в конфигурации.
func (s *POIService) Search(ctx context.Context, city string) ([]model.POI, error) {
	if s.provider == ProviderAmadeus {
		return s.LiveSearch(ctx, city)
	}
	return s.StaticSearch(city), nil
}
