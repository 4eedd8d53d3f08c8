package service

import (
	"context"
	"sort"
	"strings"

	"globetrotter/internal/model"
	"globetrotter/internal/repository"
)

// memUsers - хранилище пользователей в памяти.
type memUsers struct {
	users  []model.User
	nextID int
	err    error
}

func (m *memUsers) Create(_ context.Context, u *model.User) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return 0, repository.ErrDuplicate
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.users = append(m.users, *u)
	return u.ID, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id int) (*model.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) ListWithTripCounts(context.Context) ([]model.UserWithTrips, error) {
	out := make([]model.UserWithTrips, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, model.UserWithTrips{User: u})
	}
	return out, m.err
}

func (m *memUsers) UpdateStatus(_ context.Context, id int, status string) error {
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memUsers) UpdatePassword(_ context.Context, id int, hash string) error {
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Password = hash
			return nil
		}
	}
	return repository.ErrNotFound
}

// memTrips - поездки и их маршруты в памяти; удаление поездки удаляет пункты маршрута.
type memTrips struct {
	trips    []model.Trip
	items    []model.ItineraryItem
	nextTrip int
	nextItem int
}

func (m *memTrips) Create(_ context.Context, t *model.Trip) (int, error) {
	m.nextTrip++
	t.ID = m.nextTrip
	m.trips = append(m.trips, *t)
	return t.ID, nil
}

func (m *memTrips) GetByID(_ context.Context, id int) (*model.Trip, error) {
	for i := range m.trips {
		if m.trips[i].ID == id {
			t := m.trips[i]
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memTrips) ListWithOwners(context.Context) ([]model.TripWithOwner, error) {
	out := []model.TripWithOwner{}
	for _, t := range m.trips {
		if t.UserID != nil {
			out = append(out, model.TripWithOwner{Trip: t})
		}
	}
	return out, nil
}

func (m *memTrips) ListAll(context.Context) ([]model.Trip, error) {
	return append([]model.Trip{}, m.trips...), nil
}

func (m *memTrips) ListByUser(_ context.Context, userID int) ([]model.Trip, error) {
	out := []model.Trip{}
	for _, t := range m.trips {
		if t.OwnedBy(userID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTrips) Delete(_ context.Context, id int) error {
	for i := range m.trips {
		if m.trips[i].ID == id {
			m.trips = append(m.trips[:i], m.trips[i+1:]...)
			kept := m.items[:0]
			for _, it := range m.items {
				if it.TripID != id {
					kept = append(kept, it)
				}
			}
			m.items = kept
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memTrips) Add(_ context.Context, it *model.ItineraryItem) (int, error) {
	m.nextItem++
	it.ID = m.nextItem
	m.items = append(m.items, *it)
	return it.ID, nil
}

func (m *memTrips) ListByTrip(_ context.Context, tripID int) ([]model.ItineraryItem, error) {
	out := []model.ItineraryItem{}
	for _, it := range m.items {
		if it.TripID == tripID {
			out = append(out, it)
		}
	}
	// Как в SQL: по дню, пустой день в конце, затем по id.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ScheduledDay, out[j].ScheduledDay
		switch {
		case a == nil && b == nil:
			return out[i].ID < out[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a < *b
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memTrips) CountTrips(context.Context) (int, error) { return len(m.trips), nil }

func (m *memTrips) TopDestinations(_ context.Context, limit int) ([]model.NamedValue, error) {
	counts := map[string]int{}
	for _, t := range m.trips {
		counts[t.Destination]++
	}
	out := []model.NamedValue{}
	for name, v := range counts {
		out = append(out, model.NamedValue{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return strings.Compare(out[i].Name, out[j].Name) < 0
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memAnalytics struct {
	*memUsers
	*memTrips
}

func (m memAnalytics) CountUsers(context.Context) (int, error) { return len(m.memUsers.users), nil }

func intPtr(v int) *int { return &v }
