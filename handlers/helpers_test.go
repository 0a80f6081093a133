package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"clementus360/daily-tracker/types"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		types.ErrEmptyLabel:       http.StatusBadRequest,
		types.ErrInvalidSlot:      http.StatusBadRequest,
		types.ErrValidation:       http.StatusBadRequest,
		types.ErrTaskNotFound:     http.StatusNotFound,
		types.ErrNotFound:         http.StatusNotFound,
		types.ErrDuplicateKey:     http.StatusConflict,
		types.ErrBuiltinTask:      http.StatusConflict,
		types.ErrParse:            http.StatusUnprocessableEntity,
		types.ErrRemote:           http.StatusBadGateway,
		types.ErrNotAuthenticated: http.StatusUnauthorized,
		errors.New("disk full"):   http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(fmt.Errorf("wrapped: %w", err)), err.Error())
	}
}
