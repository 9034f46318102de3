// Package repositories is the data store gateway for users, services and
// orders. Every mutation touches exactly one document.
//
// Two drivers implement the interfaces: Mongo (production) and Memory
// (local development and tests). Both give the same results, including
// the two analytics aggregations.
package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/decorhub/app/models"
)

var (
	// ErrNotFound is returned by point lookups that match nothing.
	ErrNotFound = errors.New("repositories: not found")
	// ErrInvalidID is returned when an id is not a 24-char hex ObjectID.
	ErrInvalidID = errors.New("repositories: invalid id")
)

// InsertResult reports an insert-if-absent outcome. ID is the stored
// document's id whether it was just created or already existed.
type InsertResult struct {
	ID      string `json:"insertedId"`
	Created bool   `json:"created"`
}

// UpdateResult mirrors the store's matched/modified counters.
type UpdateResult struct {
	Matched  int64 `json:"matchedCount"`
	Modified int64 `json:"modifiedCount"`
}

// DeleteResult mirrors the store's deleted counter.
type DeleteResult struct {
	Deleted int64 `json:"deletedCount"`
}

// UserFilter narrows user listings. Zero fields are ignored.
type UserFilter struct {
	Role          string
	RoleNot       string
	AccountStatus string
}

// OrderFilter narrows order listings. Zero fields are ignored.
type OrderFilter struct {
	Status                 string
	StatusNot              string
	CustomerEmail          string
	AssignedDecoratorEmail string
	ServiceDate            string // YYYY-MM-DD
}

// MonthTotal is revenue summed over one calendar month (1-12).
type MonthTotal struct {
	Month   int     `bson:"_id"`
	Revenue float64 `bson:"revenue"`
}

// CategoryCount is the number of orders booked in one category.
type CategoryCount struct {
	Category string `bson:"_id"`
	Bookings int    `bson:"bookings"`
}

// UserRepository stores marketplace accounts.
type UserRepository interface {
	InsertIfAbsent(ctx context.Context, u *models.User) (InsertResult, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, f UserFilter) ([]models.User, error)
	TouchLastLogin(ctx context.Context, email string, at time.Time) (UpdateResult, error)
	SetAccountStatus(ctx context.Context, id, status string) (UpdateResult, error)
	SetRole(ctx context.Context, id, role string) (UpdateResult, error)
	SetRoleByEmail(ctx context.Context, email, role string) (UpdateResult, error)
	Delete(ctx context.Context, id string) (DeleteResult, error)
}

// ServiceRepository stores the decoration catalog.
type ServiceRepository interface {
	Insert(ctx context.Context, s *models.Service) (InsertResult, error)
	Update(ctx context.Context, id string, c models.ServiceChanges) (UpdateResult, error)
	List(ctx context.Context) ([]models.Service, error)
	FindByID(ctx context.Context, id string) (*models.Service, error)
}

// OrderRepository stores paid bookings.
type OrderRepository interface {
	// InsertIfAbsent stores o unless an order with the same transactionId
	// exists.
	InsertIfAbsent(ctx context.Context, o *models.Order) (InsertResult, error)
	List(ctx context.Context, f OrderFilter) ([]models.Order, error)
	// Assign sets the decorator and moves the order to Assigned.
	Assign(ctx context.Context, id, decoratorEmail string) (UpdateResult, error)
	// UpdateStatus changes the status of an order assigned to decoratorEmail.
	UpdateStatus(ctx context.Context, id, decoratorEmail, status string) (UpdateResult, error)
	// Delete removes an order; a non-empty customerEmail restricts the
	// delete to that customer's order.
	Delete(ctx context.Context, id, customerEmail string) (DeleteResult, error)
	MonthlyRevenue(ctx context.Context) ([]MonthTotal, error)
	CategoryDemand(ctx context.Context) ([]CategoryCount, error)
}

// Store bundles the three repositories of one driver.
type Store struct {
	Users    UserRepository
	Services ServiceRepository
	Orders   OrderRepository
	// Ping reports store health.
	Ping func(ctx context.Context) error
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
