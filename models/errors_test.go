package models

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestDomainError(t *testing.T) {
	t.Run(`validation error carries its message and field map`, func(t *testing.T) {
		err := NewValidationError("submitted data failed validation", map[string]string{"age": "must be a number"})
		domainErr, ok := AsDomainError(err)
		require.True(t, ok)
		require.Equal(t, ErrCodeValidation, domainErr.Code)
		require.Equal(t, "submitted data failed validation", domainErr.Message)
		require.Equal(t, "must be a number", domainErr.Fields["age"])
		require.Equal(t, 400, domainErr.HTTPStatus())
	})

	t.Run(`status mapping`, func(t *testing.T) {
		cases := []struct {
			err    error
			status int
		}{
			{NewUnauthorizedError("no token"), 401},
			{NewForbiddenError("not yours"), 403},
			{NewNotFoundError("missing"), 404},
			{NewConflictError("busy"), 409},
		}
		for _, tc := range cases {
			domainErr, ok := AsDomainError(tc.err)
			require.True(t, ok)
			require.Equal(t, tc.status, domainErr.HTTPStatus())
		}
	})

	t.Run(`wrapped domain errors still unwrap`, func(t *testing.T) {
		err := errors.Wrap(NewConflictError("busy"), "while saving")
		domainErr, ok := AsDomainError(err)
		require.True(t, ok)
		require.Equal(t, ErrCodeConflict, domainErr.Code)
	})

	t.Run(`plain errors are not domain errors`, func(t *testing.T) {
		_, ok := AsDomainError(errors.New("boom"))
		require.False(t, ok)
	})
}
