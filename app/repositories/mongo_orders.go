package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/decorhub/app/models"
	"github.com/shashiranjanraj/decorhub/pkg/metrics"
)

// MongoOrders implements OrderRepository on the orders collection.
type MongoOrders struct {
	col *mongo.Collection
}

func NewMongoOrders(col *mongo.Collection) *MongoOrders {
	return &MongoOrders{col: col}
}

func (r *MongoOrders) InsertIfAbsent(ctx context.Context, o *models.Order) (InsertResult, error) {
	defer metrics.ObserveStore(OrdersCollection, "upsert", time.Now())

	res, err := upsertOnce(ctx, r.col, bson.D{{Key: "transactionId", Value: o.TransactionID}}, o)
	if err != nil {
		return InsertResult{}, fmt.Errorf("orders: insert %s: %w", o.TransactionID, err)
	}
	return res, nil
}

func (r *MongoOrders) List(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	defer metrics.ObserveStore(OrdersCollection, "find", time.Now())
	return findAll[models.Order](ctx, r.col, orderQuery(f))
}

func (r *MongoOrders) Assign(ctx context.Context, id, decoratorEmail string) (UpdateResult, error) {
	defer metrics.ObserveStore(OrdersCollection, "update", time.Now())

	oid, err := parseID(id)
	if err != nil {
		return UpdateResult{}, err
	}
	return updateOne(ctx, r.col, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"assignedDecoratorEmail": decoratorEmail,
		"status":                 models.OrderAssigned,
	}})
}

func (r *MongoOrders) UpdateStatus(ctx context.Context, id, decoratorEmail, status string) (UpdateResult, error) {
	defer metrics.ObserveStore(OrdersCollection, "update", time.Now())

	oid, err := parseID(id)
	if err != nil {
		return UpdateResult{}, err
	}
	return updateOne(ctx, r.col,
		bson.M{"_id": oid, "assignedDecoratorEmail": decoratorEmail},
		bson.M{"$set": bson.M{"status": status}},
	)
}

func (r *MongoOrders) Delete(ctx context.Context, id, customerEmail string) (DeleteResult, error) {
	defer metrics.ObserveStore(OrdersCollection, "delete", time.Now())

	oid, err := parseID(id)
	if err != nil {
		return DeleteResult{}, err
	}
	filter := bson.M{"_id": oid}
	if customerEmail != "" {
		filter["customerEmail"] = customerEmail
	}
	return deleteOne(ctx, r.col, filter)
}

// MonthlyRevenue groups by the calendar month of createdAt (Unix seconds).
func (r *MongoOrders) MonthlyRevenue(ctx context.Context) ([]MonthTotal, error) {
	defer metrics.ObserveStore(OrdersCollection, "aggregate", time.Now())

	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"createdDate": bson.M{"$toDate": bson.M{
				"$multiply": bson.A{bson.M{"$toLong": "$createdAt"}, 1000},
			}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$month": "$createdDate"},
			"revenue": bson.M{"$sum": "$price"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	return aggregate[MonthTotal](ctx, r.col, pipeline)
}

// CategoryDemand counts orders per category, most booked first.
func (r *MongoOrders) CategoryDemand(ctx context.Context) ([]CategoryCount, error) {
	defer metrics.ObserveStore(OrdersCollection, "aggregate", time.Now())

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      "$category",
			"bookings": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "bookings", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	return aggregate[CategoryCount](ctx, r.col, pipeline)
}

func aggregate[T any](ctx context.Context, col *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("orders: aggregate: %w", err)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("orders: decode aggregate: %w", err)
	}
	return out, nil
}

func orderQuery(f OrderFilter) bson.M {
	q := bson.M{}
	switch {
	case f.Status != "":
		q["status"] = f.Status
	case f.StatusNot != "":
		q["status"] = bson.M{"$ne": f.StatusNot}
	}
	if f.CustomerEmail != "" {
		q["customerEmail"] = f.CustomerEmail
	}
	if f.AssignedDecoratorEmail != "" {
		q["assignedDecoratorEmail"] = f.AssignedDecoratorEmail
	}
	if f.ServiceDate != "" {
		q["serviceDate"] = f.ServiceDate
	}
	return q
}
