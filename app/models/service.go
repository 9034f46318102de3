package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is a bookable decoration package in the catalog.
type Service struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"       json:"_id"`
	ServiceName string             `bson:"serviceName"         json:"serviceName"`
	Cost        float64            `bson:"cost"                json:"cost"`
	Unit        string             `bson:"unit"                json:"unit"`
	Image       string             `bson:"image"               json:"image"`
	Category    string             `bson:"category"            json:"category"`
	Description string             `bson:"description"         json:"description"`
	CreatedBy   string             `bson:"createdBy"           json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt"           json:"createdAt"`
	UpdatedAt   *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ServiceChanges is the full replacement set written by a catalog update.
type ServiceChanges struct {
	ServiceName string
	Cost        float64
	Unit        string
	Image       string
	Category    string
	Description string
	CreatedBy   string
	UpdatedAt   time.Time
}
