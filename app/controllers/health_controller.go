package controllers

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/decorhub/pkg/ctx"
)

// HealthController answers liveness and readiness checks.
type HealthController struct {
	ping func(context.Context) error
}

func NewHealthController(ping func(context.Context) error) *HealthController {
	return &HealthController{ping: ping}
}

// Home handles GET /.
func (hc *HealthController) Home(c *ctx.Context) {
	c.Message("decorhub API is running")
}

// Ready handles GET /healthz.
func (hc *HealthController) Ready(c *ctx.Context) {
	if err := hc.ping(c.Context()); err != nil {
		c.Log().Warn("store ping failed", "error", err)
		c.Error(http.StatusServiceUnavailable, "store unavailable")
		return
	}
	c.Success(map[string]string{"store": "ok"})
}
