package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/decorhub/pkg/database"
)

func TestConnectRequiresURI(t *testing.T) {
	_, err := database.Connect(context.Background(), "", "decorhub")
	assert.ErrorContains(t, err, "MONGODB_URI")
}

func TestConnectRejectsMalformedURI(t *testing.T) {
	_, err := database.Connect(context.Background(), "not-a-mongo-uri", "decorhub")
	assert.ErrorContains(t, err, "database: connect")
}
