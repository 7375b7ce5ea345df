package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConflict_NamesFields(t *testing.T) {
	err := Conflict("outlet_id", "name")

	assert.Equal(t, KindConflict, err.Kind)
	assert.Equal(t, "outlet_id, name already exists", err.Message)
	assert.Contains(t, err.Fields, "name")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFrom_WrapsUnknownAsInternal(t *testing.T) {
	cause := errors.New("connection reset")
	err := From(fmt.Errorf("query: %w", cause))

	assert.Equal(t, KindInternal, err.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal error", err.Message)
}

func TestFrom_KeepsWrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("update staff: %w", Forbidden("self escalation"))

	assert.Equal(t, KindForbidden, KindOf(wrapped))
	assert.Equal(t, Kind(""), KindOf(nil))
}
