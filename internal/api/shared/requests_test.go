package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type selfValidating struct {
	err error
}

func (s selfValidating) Validate() error { return s.err }

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"max@example.com","password":"secret123"}`))

	var form loginForm
	require.NoError(t, DecodeJSON(req, &form))
	assert.Equal(t, "max@example.com", form.Email)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	assert.Error(t, DecodeJSON(req, &form))
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(loginForm{Email: "max@example.com", Password: "secret123"}))
	assert.Error(t, ValidateRequest(loginForm{Email: "not-an-email", Password: "secret123"}))
	assert.Error(t, ValidateRequest(loginForm{Email: "max@example.com", Password: "short"}))
}

func TestValidateRequestPrefersValidateMethod(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("rejected")
	assert.ErrorIs(t, ValidateRequest(selfValidating{err: sentinel}), sentinel)
	assert.NoError(t, ValidateRequest(selfValidating{}))
}
