package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	UsersCollection    = "users"
	ServicesCollection = "services"
	OrdersCollection   = "orders"
)

// NewMongoStore returns repositories backed by db.
func NewMongoStore(db *mongo.Database) Store {
	return Store{
		Users:    NewMongoUsers(db.Collection(UsersCollection)),
		Services: NewMongoServices(db.Collection(ServicesCollection)),
		Orders:   NewMongoOrders(db.Collection(OrdersCollection)),
		Ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, readpref.Primary())
		},
	}
}

// EnsureIndexes creates the unique and lookup indexes the repositories rely
// on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		},
		OrdersCollection: {
			{Keys: bson.D{{Key: "transactionId", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_transaction")},
			{Keys: bson.D{{Key: "customerEmail", Value: 1}}, Options: options.Index().SetName("customer")},
			{Keys: bson.D{{Key: "assignedDecoratorEmail", Value: 1}}, Options: options.Index().SetName("decorator")},
			{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("status")},
		},
	}

	for _, name := range []string{UsersCollection, OrdersCollection} {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, specs[name]); err != nil {
			return fmt.Errorf("repositories: create %s indexes: %w", name, err)
		}
	}
	return nil
}

// upsertOnce writes doc with $setOnInsert under filter and returns the id of
// the stored document. A duplicate-key error from a concurrent upsert is
// treated as "already exists".
func upsertOnce(ctx context.Context, col *mongo.Collection, filter bson.D, doc interface{}) (InsertResult, error) {
	res, err := col.UpdateOne(ctx, filter, bson.M{"$setOnInsert": doc}, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return InsertResult{}, err
	}
	if err == nil && res.UpsertedID != nil {
		if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
			return InsertResult{ID: oid.Hex(), Created: true}, nil
		}
		return InsertResult{ID: fmt.Sprint(res.UpsertedID), Created: true}, nil
	}

	var existing struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	if err := col.FindOne(ctx, filter, opts).Decode(&existing); err != nil {
		return InsertResult{}, err
	}
	return InsertResult{ID: existing.ID.Hex()}, nil
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter interface{}) (*T, error) {
	var v T
	if err := col.FindOne(ctx, filter).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter interface{}) ([]T, error) {
	cur, err := col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func updateOne(ctx context.Context, col *mongo.Collection, filter, update interface{}) (UpdateResult, error) {
	res, err := col.UpdateOne(ctx, filter, update)
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func deleteOne(ctx context.Context, col *mongo.Collection, filter interface{}) (DeleteResult, error) {
	res, err := col.DeleteOne(ctx, filter)
	if err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{Deleted: res.DeletedCount}, nil
}
