package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Order statuses set by the platform. Decorators may write other progress
// values in between.
const (
	OrderPending   = "pending"
	OrderAssigned  = "Assigned"
	OrderCompleted = "Completed"
)

// Order is a paid booking, materialized once per payment transaction.
type Order struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty"                    json:"_id"`
	ServiceID              string             `bson:"serviceId"                        json:"serviceId"`
	TransactionID          string             `bson:"transactionId"                    json:"transactionId"`
	CustomerEmail          string             `bson:"customerEmail"                    json:"customerEmail"`
	CustomerName           string             `bson:"customerName"                     json:"customerName"`
	SellerEmail            string             `bson:"sellerEmail"                      json:"sellerEmail"`
	AssignedDecoratorEmail string             `bson:"assignedDecoratorEmail,omitempty" json:"assignedDecoratorEmail,omitempty"`
	Name                   string             `bson:"name"                             json:"name"`
	Category               string             `bson:"category"                         json:"category"`
	Quantity               int                `bson:"quantity"                         json:"quantity"`
	Photo                  string             `bson:"photo"                            json:"photo"`
	Price                  float64            `bson:"price"                            json:"price"`
	Location               string             `bson:"location"                         json:"location"`
	Status                 string             `bson:"status"                           json:"status"`
	CreatedAt              int64              `bson:"createdAt"                        json:"createdAt"`   // Unix seconds
	ServiceDate            string             `bson:"serviceDate"                      json:"serviceDate"` // YYYY-MM-DD
}
