// Package ctx gives handlers one value to work with instead of the
// (http.ResponseWriter, *http.Request) pair:
//
//	func (oc *OrderController) Delete(c *ctx.Context) {
//	    res, err := oc.orders.Delete(c.Context(), c.Email(), c.Param("id"))
//	    if err != nil {
//	        fail(c, err)
//	        return
//	    }
//	    c.Success(res)
//	}
//
//	authed.Delete("/orders/{id}", "orders.delete", ctx.Wrap(oc.Delete))
package ctx

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/decorhub/pkg/bind"
	"github.com/shashiranjanraj/decorhub/pkg/logger"
	"github.com/shashiranjanraj/decorhub/pkg/middleware"
	"github.com/shashiranjanraj/decorhub/pkg/response"
	"github.com/shashiranjanraj/decorhub/pkg/validate"
)

type HandlerFunc func(c *Context)

// Context is only valid for the duration of the handler call; it is
// recycled afterwards.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int
}

var pool = sync.Pool{New: func() any { return new(Context) }}

// Wrap adapts h to net/http.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := pool.Get().(*Context)
		*c = Context{W: w, R: r}
		defer func() {
			*c = Context{}
			pool.Put(c)
		}()
		h(c)
	}
}

func (c *Context) Param(key string) string  { return chi.URLParam(c.R, key) }
func (c *Context) Query(key string) string  { return c.R.URL.Query().Get(key) }
func (c *Context) Header(key string) string { return c.R.Header.Get(key) }
func (c *Context) Context() context.Context { return c.R.Context() }

// Log returns the request-scoped logger.
func (c *Context) Log() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// Email returns the verified caller email, or "" on public routes.
func (c *Context) Email() string {
	id, _ := middleware.IdentityFromCtx(c.R.Context())
	return id.Email
}

// BindJSON decodes and validates the body into dest. On failure it has
// already answered 400 and returns false.
func (c *Context) BindJSON(dest any) bool {
	return c.DecodeJSON(dest) && c.Validate(dest)
}

// DecodeJSON decodes the body into dest without validating it. Handlers
// that check a field before the rest of the body use it with Validate.
func (c *Context) DecodeJSON(dest any) bool {
	if err := bind.Decode(c.R, dest); err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// Validate runs the validate tags of dest, answering 400 on failure.
func (c *Context) Validate(dest any) bool {
	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		c.status = http.StatusBadRequest
		response.ValidationError(c.W, errs)
		return false
	}
	return true
}

// JSON writes the envelope with code.
func (c *Context) JSON(code int, body response.Envelope) {
	c.status = code
	response.Write(c.W, code, body)
}

func (c *Context) Success(data any) { c.JSON(http.StatusOK, response.Envelope{Data: data}) }
func (c *Context) Created(data any) { c.JSON(http.StatusCreated, response.Envelope{Data: data}) }
func (c *Context) Message(msg string) {
	c.JSON(http.StatusOK, response.Envelope{Message: msg})
}

func (c *Context) Error(code int, msg string) { c.JSON(code, response.Envelope{Message: msg}) }
func (c *Context) NotFound(msg string)        { c.Error(http.StatusNotFound, msg) }

// Upstream answers 500 with the failing dependency's error text.
func (c *Context) Upstream(msg string, err error) {
	c.status = http.StatusInternalServerError
	response.Upstream(c.W, msg, err)
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
