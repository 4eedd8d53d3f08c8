package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound - запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
	// ErrDuplicate - нарушено ограничение уникальности (например, email).
	ErrDuplicate = errors.New("запись уже существует")
	// ErrForeignKey - ссылка на несуществующую запись.
	ErrForeignKey = errors.New("связанная запись не найдена")
)

// Коды ошибок PostgreSQL.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// translate заменяет ошибки драйвера на ошибки пакета, остальные возвращает как есть.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return ErrDuplicate
		case pqForeignKeyViolation:
			return ErrForeignKey
		}
	}
	return err
}

// requireAffected возвращает ErrNotFound, если запрос не затронул ни одной строки.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
