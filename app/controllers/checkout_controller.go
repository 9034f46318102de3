package controllers

import (
	"github.com/shashiranjanraj/decorhub/app/services"
	"github.com/shashiranjanraj/decorhub/pkg/ctx"
)

type CheckoutController struct {
	checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// CreateSession handles POST /create-checkout-session.
func (cc *CheckoutController) CreateSession(c *ctx.Context) {
	var in services.CheckoutInput
	if !c.BindJSON(&in) {
		return
	}
	url, err := cc.checkout.CreateSession(c.Context(), c.Email(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"url": url})
}

// Confirm handles POST /payment-success?session_id=.
func (cc *CheckoutController) Confirm(c *ctx.Context) {
	res, err := cc.checkout.Confirm(c.Context(), c.Query("session_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(res)
}

// Transactions handles GET /stripe/user-transactions/{email}.
func (cc *CheckoutController) Transactions(c *ctx.Context) {
	txs, err := cc.checkout.Transactions(c.Context(), c.Email(), c.Param("email"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(txs)
}
