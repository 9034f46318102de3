package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/shashiranjanraj/decorhub/app/models"
)

const ordersNS = "decorhub.orders"

func TestMongoOrderInsertIfAbsent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("created", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: oid}}}},
		))

		res, err := NewMongoOrders(mt.Coll).InsertIfAbsent(context.Background(), &models.Order{TransactionID: "pi_1"})
		require.NoError(t, err)
		assert.Equal(t, InsertResult{ID: oid.Hex(), Created: true}, res)
	})

	mt.Run("already exists", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ordersNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: oid}}),
		)

		res, err := NewMongoOrders(mt.Coll).InsertIfAbsent(context.Background(), &models.Order{TransactionID: "pi_1"})
		require.NoError(t, err)
		assert.Equal(t, InsertResult{ID: oid.Hex()}, res)
	})

	mt.Run("duplicate key race", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
			mtest.CreateCursorResponse(0, ordersNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: oid}}),
		)

		res, err := NewMongoOrders(mt.Coll).InsertIfAbsent(context.Background(), &models.Order{TransactionID: "pi_1"})
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, oid.Hex(), res.ID)
	})
}

func TestMongoAggregations(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("monthly revenue", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ordersNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: 1}, {Key: "revenue", Value: 100.0}},
			bson.D{{Key: "_id", Value: 3}, {Key: "revenue", Value: 50.0}},
		))

		rev, err := NewMongoOrders(mt.Coll).MonthlyRevenue(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []MonthTotal{{Month: 1, Revenue: 100}, {Month: 3, Revenue: 50}}, rev)
	})

	mt.Run("category demand", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ordersNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "Lighting"}, {Key: "bookings", Value: 3}},
			bson.D{{Key: "_id", Value: "Paint"}, {Key: "bookings", Value: 1}},
		))

		demand, err := NewMongoOrders(mt.Coll).CategoryDemand(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []CategoryCount{{Category: "Lighting", Bookings: 3}, {Category: "Paint", Bookings: 1}}, demand)
	})
}

func TestMongoOrderMutations(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assign reports counters", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		res, err := NewMongoOrders(mt.Coll).Assign(context.Background(), primitive.NewObjectID().Hex(), "deco@decor.test")
		require.NoError(t, err)
		assert.Equal(t, UpdateResult{Matched: 1, Modified: 1}, res)
	})

	mt.Run("delete missing is zero", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		res, err := NewMongoOrders(mt.Coll).Delete(context.Background(), primitive.NewObjectID().Hex(), "")
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.Deleted)
	})

	mt.Run("invalid id never reaches the server", func(mt *mtest.T) {
		_, err := NewMongoOrders(mt.Coll).UpdateStatus(context.Background(), "zzz", "deco@decor.test", "Completed")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestMongoUsers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "decorhub.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: "a@decor.test"}, {Key: "role", Value: "admin"}},
		))

		u, err := NewMongoUsers(mt.Coll).FindByEmail(context.Background(), "a@decor.test")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, u.Role)
	})

	mt.Run("missing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "decorhub.users", mtest.FirstBatch))

		_, err := NewMongoUsers(mt.Coll).FindByEmail(context.Background(), "ghost@decor.test")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	mt.Run("list non-admins", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "decorhub.users", mtest.FirstBatch,
			bson.D{{Key: "email", Value: "u1@decor.test"}, {Key: "role", Value: "user"}},
			bson.D{{Key: "email", Value: "d1@decor.test"}, {Key: "role", Value: "decorator"}},
		))

		users, err := NewMongoUsers(mt.Coll).List(context.Background(), UserFilter{RoleNot: models.RoleAdmin})
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}

func TestQueries(t *testing.T) {
	assert.Equal(t, bson.M{"role": bson.M{"$ne": "admin"}}, userQuery(UserFilter{RoleNot: "admin"}))
	assert.Equal(t,
		bson.M{"assignedDecoratorEmail": "d@decor.test", "serviceDate": "2026-10-17"},
		orderQuery(OrderFilter{AssignedDecoratorEmail: "d@decor.test", ServiceDate: "2026-10-17"}),
	)
}
