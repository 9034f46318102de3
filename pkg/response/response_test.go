package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/decorhub/pkg/response"
)

func TestWriteFillsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Write(rec, http.StatusOK, response.Envelope{Data: map[string]int{"deletedCount": 0}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":200,"data":{"deletedCount":0}}`, rec.Body.String())
}

func TestUpstreamCarriesErrorText(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Upstream(rec, "Something went wrong", errors.New("No such checkout.session: cs_x"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":500,"message":"Something went wrong","error":"No such checkout.session: cs_x"}`, rec.Body.String())
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationError(rec, map[string]string{"email": "The email field is required."})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":400,"message":"Validation failed","errors":{"email":"The email field is required."}}`, rec.Body.String())
}

func TestUnauthorized(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Unauthorized(rec, "Unauthorized Access!")
	assert.JSONEq(t, `{"status":401,"message":"Unauthorized Access!"}`, rec.Body.String())
}
