package service

import (
	"context"

	"globetrotter/internal/apperr"
	"globetrotter/internal/model"

	"github.com/sirupsen/logrus"
)

type tripLister interface {
	ListAll(ctx context.Context) ([]model.Trip, error)
}

// CalendarService отдает поездки в виде событий календаря.
type CalendarService struct {
	tripRepo tripLister
	log      logrus.FieldLogger
}

// NewCalendarService создает сервис календаря.
func NewCalendarService(tripRepo tripLister, log logrus.FieldLogger) *CalendarService {
	return &CalendarService{tripRepo: tripRepo, log: log}
}

// Events возвращает по событию на каждую поездку. Поездки с некорректными датами пропускаются.
func (s *CalendarService) Events(ctx context.Context) ([]model.Event, error) {
	trips, err := s.tripRepo.ListAll(ctx)
	if err != nil {
		return nil, apperr.NewInternal("Failed to fetch events", err)
	}

	events := make([]model.Event, 0, len(trips))
	for _, t := range trips {
		start, err := ParseTripDate(t.StartDate)
		if err != nil {
			s.log.WithField("trip_id", t.ID).WithError(err).Debug("поездка пропущена в календаре")
			continue
		}
		end, err := ParseTripDate(t.EndDate)
		if err != nil {
			s.log.WithField("trip_id", t.ID).WithError(err).Debug("поездка пропущена в календаре")
			continue
		}
		events = append(events, model.Event{ID: t.ID, Title: t.Destination, Start: start, End: end})
	}
	return events, nil
}
