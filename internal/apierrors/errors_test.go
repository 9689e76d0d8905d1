package apierrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{BadRequest("x"), http.StatusBadRequest},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Forbidden("x"), http.StatusForbidden},
		{NotFound("x"), http.StatusNotFound},
		{NotYetIndexed("x"), http.StatusAccepted},
		{TooManyRequests("x"), http.StatusTooManyRequests},
		{Internal("x"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, c.err.HTTPStatus(), c.err.Kind)
	}
}

func TestAsFallsBackToInternal(t *testing.T) {
	plain := errors.New("boom")
	wrapped := As(plain)
	assert.Equal(t, KindInternal, wrapped.Kind)
	assert.NotEmpty(t, wrapped.Message)
}

func TestAsPreservesExistingKind(t *testing.T) {
	original := NotFound("order not found")
	wrapped := As(original)
	assert.Same(t, original, wrapped)
}

func TestWrapNeverLeaksWrappedInMessage(t *testing.T) {
	err := Wrap(KindInternal, "safe message", errors.New("secret db dsn leaked here"))
	assert.Equal(t, "safe message", err.Message)
	assert.ErrorContains(t, err, "secret db dsn leaked here")
}
