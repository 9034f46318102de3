package controllers

import (
	"github.com/shashiranjanraj/decorhub/app/services"
	"github.com/shashiranjanraj/decorhub/pkg/ctx"
)

type AnalyticsController struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsController(analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics}
}

func (ac *AnalyticsController) Revenue(c *ctx.Context) {
	rows, err := ac.analytics.Revenue(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(rows)
}

func (ac *AnalyticsController) Demand(c *ctx.Context) {
	rows, err := ac.analytics.Demand(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(rows)
}
