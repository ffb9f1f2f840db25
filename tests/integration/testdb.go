// Package integration provides integration testing utilities for the
// catalog backend. It uses testcontainers to spin up a real MongoDB
// instance for repository tests.
package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongodb "github.com/stylehub/backend/internal/infrastructure/persistence/mongo"
)

var (
	// Shared container for all tests in the package
	sharedContainer   *tcmongo.MongoDBContainer
	sharedContainerMu sync.Mutex
	sharedURI         string
)

// TestDB represents a test database connection backed by a shared
// MongoDB container. Each test gets its own database name so tests
// stay isolated without paying container startup per test.
type TestDB struct {
	DB     *mongo.Database
	Client *mongo.Client
	t      *testing.T
}

// NewTestDB connects to the shared MongoDB container, creating it on
// first use, and returns a fresh database for the calling test.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()
	uri := containerURI(t, ctx)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err, "failed to connect to MongoDB container")

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(pingCtx, nil), "failed to ping MongoDB container")

	dbName := fmt.Sprintf("catalog_test_%d", time.Now().UnixNano())
	db := client.Database(dbName)
	require.NoError(t, mongodb.EnsureIndexes(ctx, db), "failed to create indexes")

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	return &TestDB{DB: db, Client: client, t: t}
}

func containerURI(t *testing.T, ctx context.Context) string {
	t.Helper()

	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedURI != "" {
		return sharedURI
	}

	container, err := tcmongo.Run(ctx, "mongo:7")
	require.NoError(t, err, "failed to start MongoDB container")

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err, "failed to get MongoDB connection string")

	sharedContainer = container
	sharedURI = uri
	return uri
}

// CleanupSharedContainer terminates the shared container. Call from
// TestMain after all tests have run.
func CleanupSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		_ = sharedContainer.Terminate(context.Background())
		sharedContainer = nil
		sharedURI = ""
	}
}
