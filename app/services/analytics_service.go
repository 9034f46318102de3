package services

import (
	"context"

	"github.com/shashiranjanraj/decorhub/app/models"
	"github.com/shashiranjanraj/decorhub/app/repositories"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// AnalyticsService computes the admin reports. Nothing is cached.
type AnalyticsService struct {
	orders repositories.OrderRepository
}

func NewAnalyticsService(orders repositories.OrderRepository) *AnalyticsService {
	return &AnalyticsService{orders: orders}
}

// Revenue returns revenue per calendar month, January first.
func (s *AnalyticsService) Revenue(ctx context.Context) ([]models.MonthlyRevenue, error) {
	rows, err := s.orders.MonthlyRevenue(ctx)
	if err != nil {
		return nil, storeErr("monthly revenue", err)
	}

	out := make([]models.MonthlyRevenue, 0, len(rows))
	for _, r := range rows {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		out = append(out, models.MonthlyRevenue{Month: monthNames[r.Month-1], Revenue: r.Revenue})
	}
	return out, nil
}

// Demand returns bookings per category, most booked first.
func (s *AnalyticsService) Demand(ctx context.Context) ([]models.ServiceDemand, error) {
	rows, err := s.orders.CategoryDemand(ctx)
	if err != nil {
		return nil, storeErr("service demand", err)
	}

	out := make([]models.ServiceDemand, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.ServiceDemand{Service: r.Category, Bookings: r.Bookings})
	}
	return out, nil
}
