package repository

import (
	"context"
	"fmt"

	"globetrotter/internal/model"

	"github.com/jmoiron/sqlx"
)

// AnalyticsRepository выполняет агрегирующие запросы для панели администратора.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository создает новый репозиторий аналитики.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// CountUsers возвращает общее число пользователей.
func (r *AnalyticsRepository) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM users"); err != nil {
		return 0, fmt.Errorf("ошибка при подсчете пользователей: %w", err)
	}
	return n, nil
}

// CountTrips возвращает общее число поездок.
func (r *AnalyticsRepository) CountTrips(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM trips"); err != nil {
		return 0, fmt.Errorf("ошибка при подсчете поездок: %w", err)
	}
	return n, nil
}

// TopDestinations возвращает limit самых популярных направлений по числу поездок.
func (r *AnalyticsRepository) TopDestinations(ctx context.Context, limit int) ([]model.NamedValue, error) {
	rows := []model.NamedValue{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT destination AS name, COUNT(*) AS value
		 FROM trips
		 GROUP BY destination
		 ORDER BY value DESC, destination ASC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении популярных направлений: %w", err)
	}
	return rows, nil
}
