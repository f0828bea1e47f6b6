package database

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// JournalCollection is the Mongo collection holding journal entries.
const JournalCollection = "journal_entries"

const defaultMongoDatabase = "journal"

// Connect opens a Mongo client for mongoURI, pings it and returns the database
// named in the URI path (or "journal" when the URI has none).
func Connect(ctx context.Context, mongoURI string, log *zap.Logger) (*mongo.Client, *mongo.Database, error) {
	// Longer timeout for Atlas connections
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	log.Info("connecting to MongoDB", zap.String("uri", MaskURI(mongoURI)))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	db := client.Database(DatabaseName(mongoURI))
	log.Info("connected to MongoDB", zap.String("database", db.Name()))
	return client, db, nil
}

// DatabaseName extracts the database name from a connection string of the form
// mongodb://host/name?opts, falling back to "journal".
func DatabaseName(mongoURI string) string {
	parts := strings.Split(mongoURI, "/")
	if len(parts) > 3 {
		dbPart := strings.Split(parts[len(parts)-1], "?")[0]
		if dbPart != "" {
			return dbPart
		}
	}
	return defaultMongoDatabase
}

// EnsureJournalIndexes creates the (owner_id, created_at desc) index used by
// paginated listing. Called on startup after Mongo has connected.
func EnsureJournalIndexes(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(JournalCollection)
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("idx_owner_created_at"),
	})
	return err
}

// Disconnect closes the Mongo client.
func Disconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// MaskURI hides the password part of a connection string for logging.
func MaskURI(uri string) string {
	schemeEnd := strings.Index(uri, "://")
	at := strings.LastIndex(uri, "@")
	if schemeEnd == -1 || at == -1 || at < schemeEnd {
		return uri
	}
	userInfo := uri[schemeEnd+3 : at]
	colon := strings.Index(userInfo, ":")
	if colon == -1 {
		return uri
	}
	return uri[:schemeEnd+3] + userInfo[:colon] + ":***" + uri[at:]
}
