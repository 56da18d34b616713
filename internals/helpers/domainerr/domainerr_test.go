package domainerr

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	assert.Equal(t, "NegativeRate: rate must not be negative (this_college_rate)",
		New(NegativeRate, "this_college_rate", "rate must not be negative").Error())
	assert.Equal(t, "NotFound: exam fee not found",
		New(NotFound, "", "exam fee not found").Error())
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("create: %w", New(DuplicateUniqueField, "nid_number", "already registered"))

	de, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "nid_number", de.Field)
	assert.Equal(t, DuplicateUniqueField, KindOf(err))
	assert.True(t, Is(err, DuplicateUniqueField))
	assert.False(t, Is(err, NotFound))
	assert.Equal(t, Kind(""), KindOf(fmt.Errorf("plain")))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		MissingRequiredField:        fiber.StatusBadRequest,
		InsufficientStudents:        fiber.StatusBadRequest,
		DistributionPercentMismatch: fiber.StatusBadRequest,
		TotalExpenseExceedsIncome:   fiber.StatusBadRequest,
		DuplicateUniqueField:        fiber.StatusConflict,
		NotFound:                    fiber.StatusNotFound,
		"":                          fiber.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind), string(kind))
	}
}
