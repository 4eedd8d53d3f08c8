package service

import "globetrotter/internal/model"

// Actor - пользователь, от имени которого выполняется операция (из токена сессии).
type Actor struct {
	UserID int
	Role   string
}

// IsAdmin сообщает, является ли пользователь администратором.
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// CanManage сообщает, может ли пользователь изменять данные владельца ownerID.
func (a Actor) CanManage(ownerID *int) bool {
	if a.IsAdmin() {
		return true
	}
	return ownerID != nil && *ownerID == a.UserID
}
