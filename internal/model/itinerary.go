package model

// ItineraryItem - точка интереса, запланированная в поездке на определенный день.
type ItineraryItem struct {
	ID           int     `db:"id" json:"id"`
	TripID       int     `db:"trip_id" json:"trip_id"`
	POIName      string  `db:"poi_name" json:"poi_name"`
	POICategory  *string `db:"poi_category" json:"poi_category"`
	POIPhotoURL  *string `db:"poi_photo_url" json:"poi_photo_url"`
	ScheduledDay *int    `db:"scheduled_day" json:"scheduled_day"` // номер дня поездки, группирует пункты
	Notes        *string `db:"notes" json:"notes"`
}

// ItineraryDay - пункты маршрута одного дня.
type ItineraryDay struct {
	Day   int             `json:"day"`
	Items []ItineraryItem `json:"items"`
}
