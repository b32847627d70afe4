package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// TestMongoURIEnv names the environment variable that points tests at a server.
const TestMongoURIEnv = "COURSEHUB_TEST_MONGO_URI"

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
	dbSeq      int64
	dbSeqMu    sync.Mutex
)

// TestContext returns a context suitable for a single test's store calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func sharedClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		uri := os.Getenv(TestMongoURIEnv)
		if uri == "" {
			uri = "mongodb://localhost:27017"
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		opts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(2 * time.Second)
		client, clientErr = mongo.Connect(ctx, opts)
		if clientErr != nil {
			return
		}
		if clientErr = client.Ping(ctx, readpref.Primary()); clientErr != nil {
			_ = client.Disconnect(context.Background())
			client = nil
		}
	})
	return client, clientErr
}

// SetupTestDB returns a fresh, uniquely named database and drops it when the
// test finishes. The test is skipped when no MongoDB server is reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	c, err := sharedClient()
	if err != nil {
		t.Skipf("MongoDB not available (%s): %v", TestMongoURIEnv, err)
	}

	dbSeqMu.Lock()
	dbSeq++
	name := fmt.Sprintf("coursehub_test_%d_%d", time.Now().UnixNano(), dbSeq)
	dbSeqMu.Unlock()

	db := c.Database(name)
	t.Cleanup(func() {
		ctx, cancel := TestContext()
		defer cancel()
		_ = db.Drop(ctx)
	})
	return db
}
