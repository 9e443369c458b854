package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryMintsNamespacedCodes(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("SOMETHING_BROKE", TypeInternal, http.StatusInternalServerError, "something broke")

	assert.Equal(t, Code("TEST_SOMETHING_BROKE"), code)

	err := reg.New(code)
	require.NotNil(t, err)
	assert.Equal(t, "TEST_SOMETHING_BROKE", err.Code)
	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.Equal(t, "something broke", err.Message)
}

func TestRegistryNewReturnsFreshInstances(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("VAL", TypeValidation, http.StatusBadRequest, "invalid")

	first := reg.New(code).WithDetail("field", "name")
	second := reg.New(code)

	assert.Len(t, first.Details, 1)
	assert.Empty(t, second.Details, "details on one instance must not leak into the next")
}

func TestRegistryUnregisteredCode(t *testing.T) {
	reg := NewRegistry("TEST")

	err := reg.New(Code("TEST_NEVER_REGISTERED"))
	require.NotNil(t, err)
	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, "failed to reach store", TypeInternal)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to reach store")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWithDetailChains(t *testing.T) {
	err := New("invalid input", TypeValidation).
		WithDetail("field", "user_id").
		WithDetail("reason", "empty")

	assert.Equal(t, "user_id", err.Details["field"])
	assert.Equal(t, "empty", err.Details["reason"])
}

func TestDefaultStatusByType(t *testing.T) {
	cases := []struct {
		errType Type
		status  int
	}{
		{TypeValidation, http.StatusBadRequest},
		{TypeNotFound, http.StatusNotFound},
		{TypeConflict, http.StatusConflict},
		{TypeAuthorization, http.StatusForbidden},
		{TypeBusiness, http.StatusUnprocessableEntity},
		{TypeExternal, http.StatusBadGateway},
		{TypeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, New("x", tc.errType).HTTPStatus, string(tc.errType))
	}
}

func TestIsType(t *testing.T) {
	notFound := New("missing", TypeNotFound)

	assert.True(t, IsType(notFound, TypeNotFound))
	assert.False(t, IsType(notFound, TypeValidation))
	assert.False(t, IsType(errors.New("plain"), TypeNotFound))
	assert.False(t, IsType(nil, TypeNotFound))
}
