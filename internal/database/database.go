// Package database открывает подключение к PostgreSQL, применяет миграции и заполняет демо-данные.
package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL драйвер
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Connect открывает пул соединений и проверяет доступность базы.
func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}
	return db, nil
}

// Migrate применяет все встроенные миграции по порядку имен файлов.
// Каждый файл выполняется в отдельной транзакции; скрипты идемпотентны (IF NOT EXISTS).
func Migrate(ctx context.Context, db *sqlx.DB, log logrus.FieldLogger) error {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("не удалось получить список миграций: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("не удалось прочитать миграцию %s: %w", name, err)
		}
		if err := applyMigration(ctx, db, string(content)); err != nil {
			return fmt.Errorf("миграция %s завершилась ошибкой: %w", name, err)
		}
		log.WithField("migration", name).Debug("миграция применена")
	}
	return nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, script string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, script); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
