//go:build integration

package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/bimbel-api/internal/repository"
	"github.com/noah-isme/bimbel-api/internal/repository/repositorytest"
)

func TestStoreContract(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	run := 0
	repositorytest.Run(t, func(t *testing.T) repository.Store {
		run++
		db := client.Database(fmt.Sprintf("bimbel_contract_%d_%d", time.Now().UnixNano(), run))
		t.Cleanup(func() { _ = db.Drop(context.Background()) })

		store := New(db)
		require.NoError(t, store.EnsureIndexes(context.Background()))
		return store
	})
}
