package models

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    error
		status int
	}{
		{NewValidationError("bad input"), http.StatusBadRequest},
		{NewUnauthorizedError("no token"), http.StatusUnauthorized},
		{NewForbiddenError("nope"), http.StatusForbidden},
		{NewNotFoundError("User", 1), http.StatusNotFound},
		{NewConflictError("already decided"), http.StatusConflict},
		{NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusForError(tc.err), "%v", tc.err)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")

	plain := NewValidationError("bad input")
	assert.Equal(t, "bad input", plain.Error())
	assert.Nil(t, errors.Unwrap(plain))
}

func TestRoleValid(t *testing.T) {
	t.Parallel()
	assert.True(t, RoleEmployee.Valid())
	assert.True(t, RoleManager.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("").Valid())
}

func TestRequestStatus(t *testing.T) {
	t.Parallel()
	assert.True(t, RequestStatusPending.Valid())
	assert.True(t, RequestStatusApproved.Valid())
	assert.True(t, RequestStatusRejected.Valid())
	assert.False(t, RequestStatus("granted").Valid())

	assert.False(t, RequestStatusPending.Terminal())
	assert.True(t, RequestStatusApproved.Terminal())
	assert.True(t, RequestStatusRejected.Terminal())
}
