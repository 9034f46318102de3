package controllers

import (
	"context"

	"github.com/shashiranjanraj/decorhub/app/models"
	"github.com/shashiranjanraj/decorhub/app/services"
	"github.com/shashiranjanraj/decorhub/pkg/ctx"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (oc *OrderController) All(c *ctx.Context) {
	oc.list(c, oc.orders.All)
}

func (oc *OrderController) Pending(c *ctx.Context) {
	oc.list(c, oc.orders.Pending)
}

// InProgress handles GET /manage-decorators-services.
func (oc *OrderController) InProgress(c *ctx.Context) {
	oc.list(c, oc.orders.InProgress)
}

func (oc *OrderController) ByCustomer(c *ctx.Context) {
	orders, err := oc.orders.ByCustomer(c.Context(), c.Email(), c.Param("email"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

func (oc *OrderController) Assign(c *ctx.Context) {
	var in services.AssignInput
	if !c.BindJSON(&in) {
		return
	}
	if err := oc.orders.Assign(c.Context(), in); err != nil {
		fail(c, err)
		return
	}
	c.Message("Decorator assigned successfully")
}

func (oc *OrderController) Delete(c *ctx.Context) {
	res, err := oc.orders.Delete(c.Context(), c.Email(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(res)
}

func (oc *OrderController) list(c *ctx.Context, fetch func(context.Context) ([]models.Order, error)) {
	orders, err := fetch(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}
