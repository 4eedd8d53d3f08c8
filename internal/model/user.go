package model

const (
	StatusActive    = "Active"
	StatusSuspended = "Suspended"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя (путешественника или администратора).
type User struct {
	ID       int    `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"-"`    // bcrypt-хеш (в старых записях открытый текст)
	Status   string `db:"status" json:"status"` // "Active" или "Suspended"
	Role     string `db:"role" json:"role"`     // "user" или "admin"
}

// UserWithTrips - пользователь с количеством его поездок (для панели администратора).
type UserWithTrips struct {
	User
	TripCount int `db:"trip_count" json:"tripCount"`
}

// ValidStatus сообщает, допустимо ли значение статуса.
func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusSuspended
}
