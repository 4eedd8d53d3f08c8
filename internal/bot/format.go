package bot

import (
	"fmt"
	"strings"

	"globetrotter/internal/model"
)

const maxButtonLabel = 30

// FormatPOIs - заголовок списка найденных точек интереса.
func FormatPOIs(city string, pois []model.POI) string {
	if len(pois) == 0 {
		return "Ничего не найдено."
	}
	return fmt.Sprintf("%s: найдено %d", city, len(pois))
}

// FormatPOI - подпись к фото одной точки интереса.
func FormatPOI(p model.POI) string {
	if p.Category == "" {
		return p.Name
	}
	return fmt.Sprintf("%s\n%s", p.Name, p.Category)
}

// ButtonLabel обрезает длинные названия для inline-кнопок.
func ButtonLabel(name string) string {
	r := []rune(name)
	if len(r) > maxButtonLabel {
		return string(r[:maxButtonLabel]) + "..."
	}
	return name
}

// FormatTrip описывает поездку и ее маршрут по дням.
func FormatTrip(trip *model.Trip, days []model.ItineraryDay) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n%s - %s\n", trip.Destination, trip.Duration, trip.StartDate, trip.EndDate)
	if len(days) == 0 {
		b.WriteString("\nМаршрут пока пуст.")
		return b.String()
	}
	for _, d := range days {
		fmt.Fprintf(&b, "\nДень %d:\n", d.Day)
		for _, it := range d.Items {
			b.WriteString("• " + it.POIName)
			if it.Notes != nil && *it.Notes != "" {
				b.WriteString(" - " + *it.Notes)
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatEvents - календарь поездок.
func FormatEvents(events []model.Event) string {
	if len(events) == 0 {
		return "Запланированных поездок нет."
	}
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, fmt.Sprintf("%s: %s - %s", e.Title, e.Start.Format("02.01.2006"), e.End.Format("02.01.2006")))
	}
	return strings.Join(lines, "\n")
}

// FormatFeed - последние записи ленты сообщества.
func FormatFeed(posts []model.FeedPost) string {
	if len(posts) == 0 {
		return "В ленте пока нет записей."
	}
	parts := make([]string, 0, len(posts))
	for _, p := range posts {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Name, p.Content))
	}
	return strings.Join(parts, "\n\n")
}

// FormatStats - сводка для администратора.
func FormatStats(a *model.Analytics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Пользователей: %d\nПоездок: %d", a.TotalUsers, a.TotalTrips)
	if len(a.PopularDestinations) > 0 {
		b.WriteString("\n\nПопулярные направления:")
		for i, d := range a.PopularDestinations {
			fmt.Fprintf(&b, "\n%d. %s (%d)", i+1, d.Name, d.Value)
		}
	}
	return b.String()
}
