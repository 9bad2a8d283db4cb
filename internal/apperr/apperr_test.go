package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("book course: %w", CapacityExceeded("course full"))

	assert.Equal(t, KindCapacityExceeded, KindOf(err))
	assert.Equal(t, "course full", MessageOf(err))
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	err := errors.New("connection reset")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "internal server error", MessageOf(err))
}

func TestInternalErrorsHideCause(t *testing.T) {
	err := Internal("count bookings", errors.New("pq: relation does not exist"))

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "internal server error", MessageOf(err))
	assert.Contains(t, err.Error(), "relation does not exist")
}

func TestErrorsIsMatchesKindAndMessage(t *testing.T) {
	full := CapacityExceeded("course full")

	assert.ErrorIs(t, fmt.Errorf("wrap: %w", CapacityExceeded("course full")), full)
	assert.NotErrorIs(t, CapacityExceeded("no credits remaining"), full)
}
