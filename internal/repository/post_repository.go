package repository

import (
	"context"
	"fmt"

	"globetrotter/internal/model"

	"github.com/jmoiron/sqlx"
)

// PostRepository обеспечивает сохранение и получение записей ленты сообщества.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository создает новый репозиторий записей.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create сохраняет новую запись ленты.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) (int, error) {
	var id int
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO posts (user_id, content, "timestamp") VALUES ($1, $2, $3) RETURNING id`,
		post.UserID, post.Content, post.Timestamp).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка при сохранении записи: %w", translate(err))
	}
	return id, nil
}

// ListFeed возвращает записи вместе с авторами, от новых к старым.
// limit <= 0 означает "без ограничения".
func (r *PostRepository) ListFeed(ctx context.Context, limit int) ([]model.FeedPost, error) {
	query := `SELECT p.id, p.user_id, p.content, p."timestamp", u.name, u.email
	          FROM posts p
	          JOIN users u ON p.user_id = u.id
	          ORDER BY p.id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	posts := []model.FeedPost{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении ленты: %w", err)
	}
	return posts, nil
}
