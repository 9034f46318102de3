// Package controllers adapts HTTP requests to the services layer.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/decorhub/app/services"
	"github.com/shashiranjanraj/decorhub/pkg/ctx"
	"github.com/shashiranjanraj/decorhub/pkg/response"
)

// fail answers err with the status its kind maps to. Unclassified errors
// come from the store or the payment processor and are passed through as
// 500 with their text.
func fail(c *ctx.Context, err error) {
	message := err.Error()
	var data any
	var se *services.Error
	if errors.As(err, &se) {
		message, data = se.Message, se.Data
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrPaymentIncomplete):
		status = http.StatusPaymentRequired
	}

	if status == http.StatusInternalServerError {
		c.Log().Error("request failed", "error", err)
		c.Upstream("Something went wrong", err)
		return
	}
	c.JSON(status, response.Envelope{Status: status, Message: message, Data: data})
}
