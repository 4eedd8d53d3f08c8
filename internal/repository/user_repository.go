package repository

import (
	"context"
	"fmt"

	"globetrotter/internal/model"

	"github.com/jmoiron/sqlx"
)

const userColumns = "id, name, email, password, status, role"

// UserRepository обеспечивает доступ к данным пользователей в базе данных.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт новый репозиторий пользователей.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create добавляет нового пользователя в базу. Возвращает ID созданного пользователя.
// Повторный email дает ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) (int, error) {
	query := `INSERT INTO users (name, email, password, status, role)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := r.db.QueryRowxContext(ctx, query, user.Name, user.Email, user.Password, user.Status, user.Role).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("не удалось создать пользователя: %w", translate(err))
	}
	return id, nil
}

// GetByEmail ищет пользователя по точному совпадению email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE email=$1", email)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователя по email: %w", translate(err))
	}
	return &user, nil
}

// GetByID возвращает пользователя по внутреннему идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE id=$1", id)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователя: %w", translate(err))
	}
	return &user, nil
}

// ListWithTripCounts возвращает всех пользователей с количеством их поездок.
func (r *UserRepository) ListWithTripCounts(ctx context.Context) ([]model.UserWithTrips, error) {
	users := []model.UserWithTrips{}
	err := r.db.SelectContext(ctx, &users,
		`SELECT u.id, u.name, u.email, u.password, u.status, u.role, COUNT(t.id) AS trip_count
		 FROM users u
		 LEFT JOIN trips t ON t.user_id = u.id
		 GROUP BY u.id
		 ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", err)
	}
	return users, nil
}

// UpdateStatus меняет статус пользователя.
func (r *UserRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET status=$1 WHERE id=$2", status, id)
	if err != nil {
		return fmt.Errorf("не удалось обновить статус пользователя: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return fmt.Errorf("не удалось обновить статус пользователя: %w", err)
	}
	return nil
}

// UpdatePassword сохраняет новый хеш пароля.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, hash string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE users SET password=$1 WHERE id=$2", hash, id)
	if err != nil {
		return fmt.Errorf("не удалось обновить пароль: %w", err)
	}
	return nil
}
