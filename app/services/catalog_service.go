package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shashiranjanraj/decorhub/app/models"
	"github.com/shashiranjanraj/decorhub/app/repositories"
)

// ServiceInput is the body of POST /services.
type ServiceInput struct {
	ServiceName string  `json:"serviceName" validate:"required,max=120"`
	Cost        float64 `json:"cost"        validate:"gt=0"`
	Unit        string  `json:"unit"        validate:"max=40"`
	Image       string  `json:"image"       validate:"omitempty,url"`
	Category    string  `json:"category"    validate:"required,max=60"`
	Description string  `json:"description" validate:"max=2000"`
	CreatedBy   string  `json:"createdBy"   validate:"omitempty,email"`
}

// UpdateServiceInput is the body of PATCH /services. ID is checked by
// RequireID so a missing id answers "Service ID is required" whatever else
// the body lacks.
type UpdateServiceInput struct {
	ID string `json:"id"`
	ServiceInput
}

// CatalogService manages the decoration services on offer.
type CatalogService struct {
	services repositories.ServiceRepository
	now      func() time.Time
}

func NewCatalogService(services repositories.ServiceRepository, now func() time.Time) *CatalogService {
	if now == nil {
		now = time.Now
	}
	return &CatalogService{services: services, now: now}
}

// Create adds a service. createdBy defaults to the caller.
func (s *CatalogService) Create(ctx context.Context, caller string, in ServiceInput) (repositories.InsertResult, error) {
	createdBy := in.CreatedBy
	if createdBy == "" {
		createdBy = caller
	}
	res, err := s.services.Insert(ctx, &models.Service{
		ServiceName: in.ServiceName,
		Cost:        in.Cost,
		Unit:        in.Unit,
		Image:       in.Image,
		Category:    in.Category,
		Description: in.Description,
		CreatedBy:   createdBy,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return res, storeErr("create service", err)
	}
	return res, nil
}

// RequireID rejects an update that names no service. It runs before the
// body's field rules.
func (in UpdateServiceInput) RequireID() error {
	if strings.TrimSpace(in.ID) == "" {
		return fail(ErrValidation, "Service ID is required")
	}
	return nil
}

// Update replaces the editable fields of a service.
func (s *CatalogService) Update(ctx context.Context, in UpdateServiceInput) (repositories.UpdateResult, error) {
	if err := in.RequireID(); err != nil {
		return repositories.UpdateResult{}, err
	}

	res, err := s.services.Update(ctx, in.ID, models.ServiceChanges{
		ServiceName: in.ServiceName,
		Cost:        in.Cost,
		Unit:        in.Unit,
		Image:       in.Image,
		Category:    in.Category,
		Description: in.Description,
		CreatedBy:   in.CreatedBy,
		UpdatedAt:   s.now().UTC(),
	})
	if err != nil {
		return res, storeErr("update service", err)
	}
	if res.Matched == 0 {
		return res, fail(ErrNotFound, "Service not found")
	}
	return res, nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Service, error) {
	list, err := s.services.List(ctx)
	if err != nil {
		return nil, storeErr("list services", err)
	}
	return list, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.services.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fail(ErrNotFound, "Service not found")
	}
	if err != nil {
		return nil, storeErr("find service", err)
	}
	return svc, nil
}
