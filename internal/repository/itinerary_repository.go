package repository

import (
	"context"
	"fmt"

	"globetrotter/internal/model"

	"github.com/jmoiron/sqlx"
)

// ItineraryRepository обеспечивает доступ к пунктам маршрута поездок.
type ItineraryRepository struct {
	db *sqlx.DB
}

// NewItineraryRepository создает новый репозиторий пунктов маршрута.
func NewItineraryRepository(db *sqlx.DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

// Add добавляет пункт в маршрут поездки. Дубликаты не проверяются.
func (r *ItineraryRepository) Add(ctx context.Context, item *model.ItineraryItem) (int, error) {
	query := `INSERT INTO itinerary_items (trip_id, poi_name, poi_category, poi_photo_url, scheduled_day, notes)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int
	err := r.db.QueryRowxContext(ctx, query,
		item.TripID, item.POIName, item.POICategory, item.POIPhotoURL, item.ScheduledDay, item.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка при добавлении пункта маршрута: %w", translate(err))
	}
	return id, nil
}

// ListByTrip возвращает пункты маршрута по возрастанию дня; при равных днях - в порядке добавления.
// Пункты без дня идут последними.
func (r *ItineraryRepository) ListByTrip(ctx context.Context, tripID int) ([]model.ItineraryItem, error) {
	items := []model.ItineraryItem{}
	err := r.db.SelectContext(ctx, &items,
		`SELECT id, trip_id, poi_name, poi_category, poi_photo_url, scheduled_day, notes
		 FROM itinerary_items
		 WHERE trip_id=$1
		 ORDER BY scheduled_day ASC NULLS LAST, id ASC`, tripID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении пунктов маршрута: %w", err)
	}
	return items, nil
}
