package model

// Trip представляет поездку пользователя.
type Trip struct {
	ID          int    `db:"id" json:"id"`
	Destination string `db:"destination" json:"destination"`
	Duration    string `db:"duration" json:"duration"`     // отображаемая длительность, например "7 days"
	StartDate   string `db:"start_date" json:"start_date"` // дата в формате ISO (YYYY-MM-DD)
	EndDate     string `db:"end_date" json:"end_date"`
	UserID      *int   `db:"user_id" json:"user_id"` // владелец поездки (может отсутствовать)
}

// TripWithOwner - поездка вместе с именем владельца.
type TripWithOwner struct {
	Trip
	UserName string `db:"user_name" json:"userName"`
}

// OwnedBy сообщает, принадлежит ли поездка пользователю userID.
func (t *Trip) OwnedBy(userID int) bool {
	return t.UserID != nil && *t.UserID == userID
}
