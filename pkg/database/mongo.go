// Package database opens the MongoDB connection backing the document store.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Conn bundles the client and the application database.
type Conn struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect dials uri, pings the primary and selects database name.
func Connect(ctx context.Context, uri, name string) (*Conn, error) {
	if uri == "" {
		return nil, fmt.Errorf("database: MONGODB_URI is not set")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetAppName("decorhub").
		SetServerSelectionTimeout(5 * time.Second).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &Conn{Client: client, DB: client.Database(name)}, nil
}

// Ping checks that the primary is reachable.
func (c *Conn) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (c *Conn) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}
