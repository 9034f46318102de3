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

// MongoUsers implements UserRepository on the users collection.
type MongoUsers struct {
	col *mongo.Collection
}

func NewMongoUsers(col *mongo.Collection) *MongoUsers {
	return &MongoUsers{col: col}
}

func (r *MongoUsers) InsertIfAbsent(ctx context.Context, u *models.User) (InsertResult, error) {
	defer metrics.ObserveStore(UsersCollection, "upsert", time.Now())

	res, err := upsertOnce(ctx, r.col, bson.D{{Key: "email", Value: u.Email}}, u)
	if err != nil {
		return InsertResult{}, fmt.Errorf("users: insert %s: %w", u.Email, err)
	}
	return res, nil
}

func (r *MongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer metrics.ObserveStore(UsersCollection, "find_one", time.Now())
	return findOne[models.User](ctx, r.col, bson.M{"email": email})
}

func (r *MongoUsers) List(ctx context.Context, f UserFilter) ([]models.User, error) {
	defer metrics.ObserveStore(UsersCollection, "find", time.Now())
	return findAll[models.User](ctx, r.col, userQuery(f))
}

func (r *MongoUsers) TouchLastLogin(ctx context.Context, email string, at time.Time) (UpdateResult, error) {
	defer metrics.ObserveStore(UsersCollection, "update", time.Now())
	return updateOne(ctx, r.col, bson.M{"email": email}, bson.M{"$set": bson.M{"lastLogin": at}})
}

func (r *MongoUsers) SetAccountStatus(ctx context.Context, id, status string) (UpdateResult, error) {
	return r.setByID(ctx, id, "accountStatus", status)
}

func (r *MongoUsers) SetRole(ctx context.Context, id, role string) (UpdateResult, error) {
	return r.setByID(ctx, id, "role", role)
}

func (r *MongoUsers) SetRoleByEmail(ctx context.Context, email, role string) (UpdateResult, error) {
	defer metrics.ObserveStore(UsersCollection, "update", time.Now())
	return updateOne(ctx, r.col, bson.M{"email": email}, bson.M{"$set": bson.M{"role": role}})
}

func (r *MongoUsers) Delete(ctx context.Context, id string) (DeleteResult, error) {
	defer metrics.ObserveStore(UsersCollection, "delete", time.Now())

	oid, err := parseID(id)
	if err != nil {
		return DeleteResult{}, err
	}
	return deleteOne(ctx, r.col, bson.M{"_id": oid})
}

func (r *MongoUsers) setByID(ctx context.Context, id, field, value string) (UpdateResult, error) {
	defer metrics.ObserveStore(UsersCollection, "update", time.Now())

	oid, err := parseID(id)
	if err != nil {
		return UpdateResult{}, err
	}
	return updateOne(ctx, r.col, bson.M{"_id": oid}, bson.M{"$set": bson.M{field: value}})
}

func userQuery(f UserFilter) bson.M {
	q := bson.M{}
	switch {
	case f.Role != "":
		q["role"] = f.Role
	case f.RoleNot != "":
		q["role"] = bson.M{"$ne": f.RoleNot}
	}
	if f.AccountStatus != "" {
		q["accountStatus"] = f.AccountStatus
	}
	return q
}
