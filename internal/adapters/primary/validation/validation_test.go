package validation

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/opsboard/ticket-health-backend/internal/core/errors"
)

func TestValidatorChaining(t *testing.T) {
	v := NewValidator()

	v.Required("name", "").
		MinLength("password", "abc", 8).
		MaxLength("summary", strings.Repeat("x", 300), 255).
		Custom("status", false, "Unknown status")

	require.True(t, v.HasErrors())
	errs := v.Errors()
	assert.Contains(t, errs.Errors, "name")
	assert.Contains(t, errs.Errors, "password")
	assert.Contains(t, errs.Errors, "summary")
	assert.Contains(t, errs.Errors, "status")
}

func TestValidatorNoErrors(t *testing.T) {
	v := NewValidator()

	v.Required("name", "ok").
		MinLength("password", "longenough", 8)

	assert.False(t, v.HasErrors())
}

func TestDecodeAndValidate(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"demo"}`))
	decoded, err := DecodeAndValidate[payload](req)
	require.NoError(t, err)
	assert.Equal(t, "demo", decoded.Name)
}

func TestDecodeAndValidate_BadBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
	_, err := DecodeAndValidate[payload](req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestParseCSVQueryParam(t *testing.T) {
	req := httptest.NewRequest("GET", "/?teams=Platform,%20Data%20,,ML", nil)
	assert.Equal(t, []string{"Platform", "Data", "ML"}, ParseCSVQueryParam(req, "teams"))

	req = httptest.NewRequest("GET", "/", nil)
	assert.Nil(t, ParseCSVQueryParam(req, "teams"))

	req = httptest.NewRequest("GET", "/?teams=,%20,", nil)
	assert.Nil(t, ParseCSVQueryParam(req, "teams"))
}
