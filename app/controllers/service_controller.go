package controllers

import (
	"github.com/shashiranjanraj/decorhub/app/services"
	"github.com/shashiranjanraj/decorhub/pkg/ctx"
)

type ServiceController struct {
	catalog *services.CatalogService
}

func NewServiceController(catalog *services.CatalogService) *ServiceController {
	return &ServiceController{catalog: catalog}
}

func (sc *ServiceController) Create(c *ctx.Context) {
	var in services.ServiceInput
	if !c.BindJSON(&in) {
		return
	}
	res, err := sc.catalog.Create(c.Context(), c.Email(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(res)
}

func (sc *ServiceController) Update(c *ctx.Context) {
	var in services.UpdateServiceInput
	if !c.DecodeJSON(&in) {
		return
	}
	if err := in.RequireID(); err != nil {
		fail(c, err)
		return
	}
	if !c.Validate(&in) {
		return
	}
	res, err := sc.catalog.Update(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(res)
}

func (sc *ServiceController) List(c *ctx.Context) {
	list, err := sc.catalog.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(list)
}

func (sc *ServiceController) Show(c *ctx.Context) {
	svc, err := sc.catalog.Get(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(svc)
}
