package services

import (
	"context"
	"math"
	"time"

	"github.com/shashiranjanraj/decorhub/app/models"
	"github.com/shashiranjanraj/decorhub/app/repositories"
)

// DecoratorShare is the fraction of an order's price paid to the decorator.
const DecoratorShare = 0.6

// ProjectStatusInput is the body of PATCH /decorator/projects/{id}.
type ProjectStatusInput struct {
	Status string `json:"status" validate:"required,max=40"`
}

// DecoratorService serves the decorator dashboard.
type DecoratorService struct {
	orders repositories.OrderRepository
	now    func() time.Time
}

func NewDecoratorService(orders repositories.OrderRepository, now func() time.Time) *DecoratorService {
	if now == nil {
		now = time.Now
	}
	return &DecoratorService{orders: orders, now: now}
}

// Earnings sums the decorator share over every assigned order.
func (s *DecoratorService) Earnings(ctx context.Context, email string) (models.Earnings, error) {
	orders, err := s.Projects(ctx, email)
	if err != nil {
		return models.Earnings{}, err
	}

	var e models.Earnings
	for _, o := range orders {
		e.Total += o.Price * DecoratorShare
		if o.Status == models.OrderCompleted {
			e.Completed++
		} else {
			e.Pending++
		}
	}
	e.Total = math.Round(e.Total*100) / 100
	return e, nil
}

// TodaySchedule lists assigned orders whose service date is today (UTC).
func (s *DecoratorService) TodaySchedule(ctx context.Context, email string) ([]models.Order, error) {
	orders, err := s.orders.List(ctx, repositories.OrderFilter{
		AssignedDecoratorEmail: email,
		ServiceDate:            s.now().UTC().Format("2006-01-02"),
	})
	if err != nil {
		return nil, storeErr("list schedule", err)
	}
	return orders, nil
}

// Projects lists every order assigned to email.
func (s *DecoratorService) Projects(ctx context.Context, email string) ([]models.Order, error) {
	orders, err := s.orders.List(ctx, repositories.OrderFilter{AssignedDecoratorEmail: email})
	if err != nil {
		return nil, storeErr("list projects", err)
	}
	return orders, nil
}

// UpdateStatus records progress on one of the decorator's own projects.
func (s *DecoratorService) UpdateStatus(ctx context.Context, email, id, status string) (repositories.UpdateResult, error) {
	res, err := s.orders.UpdateStatus(ctx, id, email, status)
	if err != nil {
		return res, storeErr("update project status", err)
	}
	if res.Matched == 0 {
		return res, fail(ErrNotFound, "Project not found")
	}
	return res, nil
}
