package controllers

import (
	"github.com/shashiranjanraj/decorhub/app/services"
	"github.com/shashiranjanraj/decorhub/pkg/ctx"
)

type DecoratorController struct {
	decorator *services.DecoratorService
}

func NewDecoratorController(decorator *services.DecoratorService) *DecoratorController {
	return &DecoratorController{decorator: decorator}
}

func (dc *DecoratorController) Earnings(c *ctx.Context) {
	e, err := dc.decorator.Earnings(c.Context(), c.Email())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(e)
}

func (dc *DecoratorController) TodaySchedule(c *ctx.Context) {
	jobs, err := dc.decorator.TodaySchedule(c.Context(), c.Email())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(jobs)
}

func (dc *DecoratorController) Projects(c *ctx.Context) {
	projects, err := dc.decorator.Projects(c.Context(), c.Email())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(projects)
}

func (dc *DecoratorController) UpdateStatus(c *ctx.Context) {
	var in services.ProjectStatusInput
	if !c.BindJSON(&in) {
		return
	}
	res, err := dc.decorator.UpdateStatus(c.Context(), c.Email(), c.Param("id"), in.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(res)
}
