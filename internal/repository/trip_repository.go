package repository

import (
	"context"
	"fmt"

	"globetrotter/internal/model"

	"github.com/jmoiron/sqlx"
)

const tripColumns = "id, destination, duration, start_date, end_date, user_id"

// TripRepository обеспечивает доступ к данным поездок в базе данных.
type TripRepository struct {
	db *sqlx.DB
}

// NewTripRepository создает новый репозиторий для поездок.
func NewTripRepository(db *sqlx.DB) *TripRepository {
	return &TripRepository{db: db}
}

// Create создает новую поездку. Несуществующий владелец дает ErrForeignKey.
func (r *TripRepository) Create(ctx context.Context, trip *model.Trip) (int, error) {
	query := `INSERT INTO trips (destination, duration, start_date, end_date, user_id)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := r.db.QueryRowxContext(ctx, query, trip.Destination, trip.Duration, trip.StartDate, trip.EndDate, trip.UserID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("не удалось создать поездку: %w", translate(err))
	}
	return id, nil
}

// GetByID возвращает поездку по ID.
func (r *TripRepository) GetByID(ctx context.Context, id int) (*model.Trip, error) {
	var trip model.Trip
	err := r.db.GetContext(ctx, &trip, "SELECT "+tripColumns+" FROM trips WHERE id=$1", id)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении поездки: %w", translate(err))
	}
	return &trip, nil
}

// ListWithOwners возвращает все поездки вместе с именами владельцев.
// Поездки без владельца в выборку не попадают.
func (r *TripRepository) ListWithOwners(ctx context.Context) ([]model.TripWithOwner, error) {
	trips := []model.TripWithOwner{}
	err := r.db.SelectContext(ctx, &trips,
		`SELECT t.id, t.destination, t.duration, t.start_date, t.end_date, t.user_id, u.name AS user_name
		 FROM trips t
		 JOIN users u ON t.user_id = u.id
		 ORDER BY t.id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка поездок: %w", err)
	}
	return trips, nil
}

// ListAll возвращает все поездки без объединения с пользователями (для календаря).
func (r *TripRepository) ListAll(ctx context.Context) ([]model.Trip, error) {
	trips := []model.Trip{}
	if err := r.db.SelectContext(ctx, &trips, "SELECT "+tripColumns+" FROM trips ORDER BY id"); err != nil {
		return nil, fmt.Errorf("ошибка при получении поездок: %w", err)
	}
	return trips, nil
}

// ListByUser возвращает поездки одного пользователя.
func (r *TripRepository) ListByUser(ctx context.Context, userID int) ([]model.Trip, error) {
	trips := []model.Trip{}
	err := r.db.SelectContext(ctx, &trips, "SELECT "+tripColumns+" FROM trips WHERE user_id=$1 ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении поездок пользователя: %w", err)
	}
	return trips, nil
}

// Delete удаляет поездку; пункты маршрута удаляются каскадно (ON DELETE CASCADE).
func (r *TripRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM trips WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("не удалось удалить поездку: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return fmt.Errorf("не удалось удалить поездку: %w", err)
	}
	return nil
}
