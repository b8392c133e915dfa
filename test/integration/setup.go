package integration

import (
	"context"
	"testing"
	"time"

	"autokit/internal/config"
	"autokit/internal/database"
	"autokit/internal/model"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *mongodb.MongoDBContainer
	DB        *mongo.Database
	URI       string
}

// SetupTestDB creates a MongoDB test container and database handle.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongodb container: %v", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		URI:            uri,
		Name:           "autokit_test",
		MaxPoolSize:    10,
		MinPoolSize:    1,
		ConnectTimeout: 10,
	}

	logger := zerolog.Nop()
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := database.Connect(connectCtx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to connect to mongodb: %v", err)
	}

	t.Cleanup(func() {
		database.Disconnect(context.Background(), db, logger)
		if err := mongoContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: mongoContainer,
		DB:        db,
		URI:       uri,
	}
}

// Reset drops the product and order collections.
func (tdb *TestDB) Reset(t *testing.T) {
	t.Helper()

	ctx := context.Background()
	for _, name := range []string{"product", "order"} {
		if err := tdb.DB.Collection(name).Drop(ctx); err != nil {
			t.Fatalf("failed to drop collection %s: %v", name, err)
		}
	}
}

// InsertProducts writes the given products directly, assigning identifiers,
// and returns them with IDs populated.
func (tdb *TestDB) InsertProducts(t *testing.T, products []model.Product) []model.Product {
	t.Helper()

	ctx := context.Background()
	docs := make([]interface{}, len(products))
	for i := range products {
		if products[i].ID.IsZero() {
			products[i].ID = primitive.NewObjectID()
		}
		docs[i] = products[i]
	}

	if _, err := tdb.DB.Collection("product").InsertMany(ctx, docs); err != nil {
		t.Fatalf("failed to insert products: %v", err)
	}

	return products
}

// CountOrders returns the number of persisted order documents.
func (tdb *TestDB) CountOrders(t *testing.T) int64 {
	t.Helper()

	count, err := tdb.DB.Collection("order").CountDocuments(context.Background(), bson.M{})
	if err != nil {
		t.Fatalf("failed to count orders: %v", err)
	}
	return count
}
