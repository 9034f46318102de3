package services

import (
	"context"

	"github.com/shashiranjanraj/decorhub/app/models"
	"github.com/shashiranjanraj/decorhub/app/repositories"
	"github.com/shashiranjanraj/decorhub/pkg/rbac"
)

// AssignInput is the body of PATCH /orders/assign. Presence is checked by
// the service so both missing fields share one message.
type AssignInput struct {
	OrderID                string `json:"orderId"`
	AssignedDecoratorEmail string `json:"assignedDecoratorEmail" validate:"omitempty,email"`
}

// OrderService covers order listing, assignment and cancellation.
type OrderService struct {
	orders repositories.OrderRepository
	roles  rbac.RoleLookup
}

func NewOrderService(orders repositories.OrderRepository, roles rbac.RoleLookup) *OrderService {
	return &OrderService{orders: orders, roles: roles}
}

// All lists every order.
func (s *OrderService) All(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, repositories.OrderFilter{})
}

// Pending lists orders awaiting assignment.
func (s *OrderService) Pending(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, repositories.OrderFilter{Status: models.OrderPending})
}

// InProgress lists every order that has left pending.
func (s *OrderService) InProgress(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, repositories.OrderFilter{StatusNot: models.OrderPending})
}

// ByCustomer lists the orders of email. Only the customer or an admin may ask.
func (s *OrderService) ByCustomer(ctx context.Context, caller, email string) ([]models.Order, error) {
	email = normalizeEmail(email)
	if err := selfOrAdmin(ctx, s.roles, caller, email); err != nil {
		return nil, err
	}
	return s.list(ctx, repositories.OrderFilter{CustomerEmail: email})
}

// Assign hands an order to a decorator.
func (s *OrderService) Assign(ctx context.Context, in AssignInput) error {
	if in.OrderID == "" || in.AssignedDecoratorEmail == "" {
		return fail(ErrValidation, "orderId and assignedDecoratorEmail are required")
	}

	res, err := s.orders.Assign(ctx, in.OrderID, in.AssignedDecoratorEmail)
	if err != nil {
		return storeErr("assign order", err)
	}
	if res.Modified != 1 {
		return fail(ErrNotFound, "Order not found or already assigned")
	}
	return nil
}

// Delete removes an order. Customers can only remove their own; an admin
// can remove any. An unknown id is not an error.
func (s *OrderService) Delete(ctx context.Context, caller, id string) (repositories.DeleteResult, error) {
	admin, err := isAdmin(ctx, s.roles, caller)
	if err != nil {
		return repositories.DeleteResult{}, err
	}
	owner := caller
	if admin {
		owner = ""
	}

	res, err := s.orders.Delete(ctx, id, owner)
	if err != nil {
		return res, storeErr("delete order", err)
	}
	return res, nil
}

func (s *OrderService) list(ctx context.Context, f repositories.OrderFilter) ([]models.Order, error) {
	orders, err := s.orders.List(ctx, f)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	return orders, nil
}
