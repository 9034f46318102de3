package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles.
const (
	RoleUser      = "user"
	RoleDecorator = "decorator"
	RoleAdmin     = "admin"
)

// AccountAvailable marks a decorator who can take new assignments.
const AccountAvailable = "available"

// User is a marketplace account, keyed by email.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"           json:"_id"`
	Email         string             `bson:"email"                   json:"email"`
	Name          string             `bson:"name,omitempty"          json:"name,omitempty"`
	Photo         string             `bson:"photo,omitempty"         json:"photo,omitempty"`
	Role          string             `bson:"role"                    json:"role"`
	AccountStatus string             `bson:"accountStatus,omitempty" json:"accountStatus,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"               json:"createdAt"`
	LastLogin     time.Time          `bson:"lastLogin"               json:"lastLogin"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleDecorator, RoleAdmin:
		return true
	}
	return false
}
