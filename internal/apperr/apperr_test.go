package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, Conflict, KindOf(NewConflict("email занят")))
	assert.Equal(t, NotFound, KindOf(fmt.Errorf("обертка: %w", NewNotFound("нет"))))
	assert.Equal(t, Internal, KindOf(errors.New("что-то сломалось")))
}

func TestWrapKeepsCause(t *testing.T) {
	err := NewInternal("не удалось получить поездки", sql.ErrConnDone)

	assert.True(t, errors.Is(err, sql.ErrConnDone))
	assert.True(t, Is(err, Internal))
	assert.False(t, Is(nil, Internal))
	assert.Contains(t, err.Error(), "internal")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", Validation.String())
	assert.Equal(t, "forbidden", Forbidden.String())
	assert.Equal(t, "internal", Kind(99).String())
}
