package model

import "time"

// Event - поездка в виде события календаря.
type Event struct {
	ID    int       `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
