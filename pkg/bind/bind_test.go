package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/decorhub/pkg/bind"
)

type statusInput struct {
	Status string  `json:"status" validate:"required"`
	Cost   float64 `json:"cost"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestJSONDecodesAndValidates(t *testing.T) {
	var in statusInput
	errs, err := bind.JSON(post(`{"status":"Completed","cost":12.5}`), &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, statusInput{Status: "Completed", Cost: 12.5}, in)

	errs, err = bind.JSON(post(`{"cost":1}`), &statusInput{})
	require.NoError(t, err)
	assert.Equal(t, "The status field is required.", errs["status"])
}

func TestJSONRejectsUnusableBodies(t *testing.T) {
	_, err := bind.JSON(httptest.NewRequest(http.MethodPost, "/", nil), &statusInput{})
	assert.ErrorIs(t, err, bind.ErrEmptyBody)

	_, err = bind.JSON(post("   "), &statusInput{})
	assert.ErrorIs(t, err, bind.ErrEmptyBody)

	_, err = bind.JSON(post(`{"status":"a"} {"status":"b"}`), &statusInput{})
	assert.ErrorIs(t, err, bind.ErrTrailingData)

	_, err = bind.JSON(post(`{"status":"a","cost":"free"}`), &statusInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cost")
}

func TestJSONBodyLimit(t *testing.T) {
	prev := bind.MaxBodyBytes
	bind.MaxBodyBytes = 16
	t.Cleanup(func() { bind.MaxBodyBytes = prev })

	_, err := bind.JSON(post(`{"status":"`+strings.Repeat("x", 64)+`"}`), &statusInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestDecodeSkipsValidation(t *testing.T) {
	var in statusInput
	require.NoError(t, bind.Decode(post(`{"cost":4}`), &in))
	assert.Equal(t, 4.0, in.Cost)

	assert.ErrorIs(t, bind.Decode(post(`{} {}`), &in), bind.ErrTrailingData)
}
