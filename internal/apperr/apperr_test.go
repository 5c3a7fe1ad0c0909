package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want int
	}{
		{AuthenticationFailed, http.StatusUnauthorized},
		{ForbiddenAccess, http.StatusForbidden},
		{ForbiddenOperation, http.StatusForbidden},
		{TargetNotFound, http.StatusNotFound},
		{InvalidParams, http.StatusBadRequest},
		{InvalidState, http.StatusBadRequest},
		{ServerError, http.StatusInternalServerError},
		{DatabaseError, http.StatusInternalServerError},
		{UnexpectedError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.HTTPStatus(), "kind %s", tt.kind)
	}
}

func TestWrapKeepsCauseOnUnwrapChain(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := Wrap(cause, DatabaseError, "Database operation failed")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, DatabaseError, err.Kind)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIsMatchesByKind(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", New(InvalidState, "loginId is not available"))
	assert.ErrorIs(t, err, New(InvalidState, ""))
	assert.NotErrorIs(t, err, New(InvalidParams, ""))
}

func TestFrom(t *testing.T) {
	t.Parallel()

	assert.Nil(t, From(nil))

	tagged := New(TargetNotFound, "gone")
	assert.Same(t, tagged, From(fmt.Errorf("wrapped: %w", tagged)))

	plain := From(errors.New("boom"))
	require.NotNil(t, plain)
	assert.Equal(t, UnexpectedError, plain.Kind)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, ForbiddenOperation, KindOf(New(ForbiddenOperation, "closed")))
	assert.Equal(t, UnexpectedError, KindOf(errors.New("boom")))
}

func TestWithDetailsCopies(t *testing.T) {
	t.Parallel()

	base := New(InvalidParams, "Request validation failed")
	detailed := base.WithDetails("loginId must be not empty", "password must be length in [8, 128]")

	assert.Empty(t, base.Details)
	assert.Len(t, detailed.Details, 2)
	assert.Contains(t, detailed.Error(), "loginId must be not empty")
}
