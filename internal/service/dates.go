package service

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTripDate разбирает дату поездки: YYYY-MM-DD или дату со временем.
func ParseTripDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("некорректная дата %q", s)
}

const secondsPerDay = 24 * 60 * 60

// DurationDays возвращает число полных дней между start и end с отбрасыванием дробной части.
// Если конец раньше начала, результат отрицательный.
// Считается в секундах Unix: time.Duration ограничен примерно 292 годами.
func DurationDays(start, end time.Time) int {
	return int((end.Unix() - start.Unix()) / secondsPerDay)
}

// FormatDuration форматирует длительность так, как она хранится в поездке.
func FormatDuration(days int) string {
	return fmt.Sprintf("%d days", days)
}
