package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/decorhub/app/models"
	"github.com/shashiranjanraj/decorhub/pkg/metrics"
)

// MongoServices implements ServiceRepository on the services collection.
type MongoServices struct {
	col *mongo.Collection
}

func NewMongoServices(col *mongo.Collection) *MongoServices {
	return &MongoServices{col: col}
}

func (r *MongoServices) Insert(ctx context.Context, s *models.Service) (InsertResult, error) {
	defer metrics.ObserveStore(ServicesCollection, "insert", time.Now())

	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return InsertResult{}, fmt.Errorf("services: insert: %w", err)
	}
	return InsertResult{ID: s.ID.Hex(), Created: true}, nil
}

func (r *MongoServices) Update(ctx context.Context, id string, c models.ServiceChanges) (UpdateResult, error) {
	defer metrics.ObserveStore(ServicesCollection, "update", time.Now())

	oid, err := parseID(id)
	if err != nil {
		return UpdateResult{}, err
	}
	return updateOne(ctx, r.col, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"serviceName": c.ServiceName,
		"cost":        c.Cost,
		"unit":        c.Unit,
		"image":       c.Image,
		"category":    c.Category,
		"description": c.Description,
		"createdBy":   c.CreatedBy,
		"updatedAt":   c.UpdatedAt,
	}})
}

func (r *MongoServices) List(ctx context.Context) ([]models.Service, error) {
	defer metrics.ObserveStore(ServicesCollection, "find", time.Now())
	return findAll[models.Service](ctx, r.col, bson.M{})
}

func (r *MongoServices) FindByID(ctx context.Context, id string) (*models.Service, error) {
	defer metrics.ObserveStore(ServicesCollection, "find_one", time.Now())

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return findOne[models.Service](ctx, r.col, bson.M{"_id": oid})
}
