package service

import (
	"errors"

	"globetrotter/internal/apperr"
	"globetrotter/internal/repository"
)

// storeError переводит ошибку репозитория в ошибку приложения.
// notFound - сообщение для случая, когда запись не найдена.
func storeError(err error, notFound, internal string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NewNotFound(notFound)
	}
	return apperr.NewInternal(internal, err)
}
