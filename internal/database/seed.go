package database

import (
	"context"
	"fmt"

	"globetrotter/internal/auth"
	"globetrotter/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type seedUser struct {
	name, email, password, status, role string
}

// owner и author - индекс в demoUsers.
type seedTrip struct {
	destination, duration, start, end string
	owner                             int
}

type seedPost struct {
	author             int
	content, timestamp string
}

var (
	defaultAdmin = seedUser{"Admin", "admin@globetrotter.com", "admin123", model.StatusActive, model.RoleAdmin}

	demoUsers = []seedUser{
		defaultAdmin,
		{"Alice", "alice@example.com", "password123", model.StatusActive, model.RoleUser},
		{"Bob", "bob@example.com", "password123", model.StatusActive, model.RoleUser},
		{"Charlie", "charlie@example.com", "password123", model.StatusSuspended, model.RoleUser},
	}

	demoTrips = []seedTrip{
		{"Paris", "7 days", "2025-08-01", "2025-08-10", 0},
		{"Tokyo", "10 days", "2025-08-15", "2025-08-25", 1},
		{"New York", "5 days", "2025-09-05", "2025-09-10", 2},
	}

	demoPosts = []seedPost{
		{0, "Just got back from an amazing trip to Paris! #travel #eiffeltower", "2 hours ago"},
		{1, "Exploring the vibrant streets of Tokyo. Any recommendations for good sushi places?", "5 hours ago"},
		{2, "Planning a trip to New York next month. What are the must-see spots?", "1 day ago"},
		{0, "Loved the beaches in Bali! #sunset #beachlife", "2 days ago"},
	}
)

// Seed заполняет базу демонстрационными данными. Каждая таблица проверяется отдельно:
// пользователи добавляются в пустую таблицу users (иначе только гарантируется администратор),
// поездки и записи ленты - в пустые trips и posts, если их авторы есть в базе.
func Seed(ctx context.Context, db *sqlx.DB, log logrus.FieldLogger) error {
	users, err := countRows(ctx, db, "users")
	if err != nil {
		return err
	}
	if users == 0 {
		for _, u := range demoUsers {
			if _, err := upsertSeedUser(ctx, db, u); err != nil {
				return err
			}
		}
		log.WithField("count", len(demoUsers)).Info("добавлены демо-пользователи")
	} else if err := ensureAdmin(ctx, db, log); err != nil {
		return err
	}

	seeder := &demoSeeder{db: db}
	trips, err := countRows(ctx, db, "trips")
	if err != nil {
		return err
	}
	if trips == 0 {
		n, err := seeder.trips(ctx)
		if err != nil {
			return err
		}
		log.WithField("count", n).Info("добавлены демо-поездки")
	}

	posts, err := countRows(ctx, db, "posts")
	if err != nil {
		return err
	}
	if posts == 0 {
		n, err := seeder.posts(ctx)
		if err != nil {
			return err
		}
		log.WithField("count", n).Info("добавлены демо-записи ленты")
	}
	return nil
}

// ensureAdmin назначает администратора по умолчанию, если в базе нет ни одного.
// Существующая учетная запись с тем же email повышается до администратора.
func ensureAdmin(ctx context.Context, db *sqlx.DB, log logrus.FieldLogger) error {
	var admins int
	if err := db.GetContext(ctx, &admins, "SELECT COUNT(*) FROM users WHERE role=$1", model.RoleAdmin); err != nil {
		return fmt.Errorf("не удалось проверить наличие администратора: %w", err)
	}
	if admins > 0 {
		return nil
	}
	if _, err := upsertSeedUser(ctx, db, defaultAdmin); err != nil {
		return err
	}
	log.WithField("email", defaultAdmin.email).Info("назначен администратор по умолчанию")
	return nil
}

// countRows считает строки таблицы; table - только константа из этого файла.
func countRows(ctx context.Context, db *sqlx.DB, table string) (int, error) {
	var n int
	if err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, fmt.Errorf("не удалось посчитать записи в %s: %w", table, err)
	}
	return n, nil
}

// demoSeeder находит ID демо-пользователей по email один раз и переиспользует их.
type demoSeeder struct {
	db  *sqlx.DB
	ids map[string]int
}

func (s *demoSeeder) ownerID(ctx context.Context, idx int) (int, bool, error) {
	if s.ids == nil {
		emails := make([]string, len(demoUsers))
		for i, u := range demoUsers {
			emails[i] = u.email
		}
		var rows []struct {
			ID    int    `db:"id"`
			Email string `db:"email"`
		}
		if err := s.db.SelectContext(ctx, &rows, "SELECT id, email FROM users WHERE email = ANY($1)", pq.Array(emails)); err != nil {
			return 0, false, fmt.Errorf("не удалось найти демо-пользователей: %w", err)
		}
		s.ids = make(map[string]int, len(rows))
		for _, r := range rows {
			s.ids[r.Email] = r.ID
		}
	}
	id, ok := s.ids[demoUsers[idx].email]
	return id, ok, nil
}

func (s *demoSeeder) trips(ctx context.Context) (int, error) {
	added := 0
	for _, t := range demoTrips {
		owner, ok, err := s.ownerID(ctx, t.owner)
		if err != nil {
			return added, err
		}
		if !ok {
			continue
		}
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO trips (destination, duration, start_date, end_date, user_id) VALUES ($1, $2, $3, $4, $5)",
			t.destination, t.duration, t.start, t.end, owner)
		if err != nil {
			return added, fmt.Errorf("не удалось добавить демо-поездку: %w", err)
		}
		added++
	}
	return added, nil
}

func (s *demoSeeder) posts(ctx context.Context) (int, error) {
	added := 0
	for _, p := range demoPosts {
		author, ok, err := s.ownerID(ctx, p.author)
		if err != nil {
			return added, err
		}
		if !ok {
			continue
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO posts (user_id, content, "timestamp") VALUES ($1, $2, $3)`,
			author, p.content, p.timestamp)
		if err != nil {
			return added, fmt.Errorf("не удалось добавить демо-запись: %w", err)
		}
		added++
	}
	return added, nil
}

// upsertSeedUser добавляет пользователя; при занятом email только выставляет ему роль.
func upsertSeedUser(ctx context.Context, db *sqlx.DB, u seedUser) (int, error) {
	hash, err := auth.HashPassword(u.password)
	if err != nil {
		return 0, fmt.Errorf("не удалось захешировать пароль: %w", err)
	}
	var id int
	err = db.QueryRowxContext(ctx,
		`INSERT INTO users (name, email, password, status, role) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
		RETURNING id`,
		u.name, u.email, hash, u.status, u.role).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("не удалось добавить пользователя %s: %w", u.email, err)
	}
	return id, nil
}
