package database

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"checkmate-bot/internal/models"
	"checkmate-bot/internal/state"
)

// DocumentID is the well-known id of the single shared state document.
const DocumentID = "checkmate"

// DB wraps the MongoDB document store. The whole application state lives
// in one document; Save replaces it wholesale, last write wins.
type DB struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// New connects to MongoDB and binds the state collection.
func New(ctx context.Context, uri, dbName, collName string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("Successfully connected to MongoDB")
	return &DB{
		client:     client,
		collection: client.Database(dbName).Collection(collName),
	}, nil
}

// Close closes the database connection.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// envelope is the stored shape: the well-known id plus the state payload.
type envelope struct {
	ID      string           `bson:"_id"`
	Content *models.Document `bson:"content"`
}

// Load fetches the shared document. A missing document is not an error;
// it returns (nil, nil) and the caller falls back to cache or defaults.
func (db *DB) Load(ctx context.Context) (*models.Document, error) {
	var env envelope
	err := db.collection.FindOne(ctx, bson.M{"_id": DocumentID}).Decode(&env)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return env.Content, nil
}

// Save replaces the shared document, creating it on first write.
func (db *DB) Save(ctx context.Context, doc *models.Document) error {
	opts := options.Replace().SetUpsert(true)
	_, err := db.collection.ReplaceOne(ctx, bson.M{"_id": DocumentID}, envelope{ID: DocumentID, Content: doc}, opts)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Reset replaces the stored document with the compiled-in defaults.
func (db *DB) Reset(ctx context.Context) error {
	return db.Save(ctx, models.DefaultDocument())
}

// LoadInitial resolves the startup document: remote store first, local
// cache on miss, compiled-in defaults on both. Whatever loads is run
// through the schema upgrade before use. Store errors are logged, never
// fatal; the tracker runs against memory and retries on later syncs.
func LoadInitial(ctx context.Context, db *DB, cache *FileCache) *models.Document {
	if db != nil {
		doc, err := db.Load(ctx)
		if err != nil {
			log.Println("Remote load failed, trying local cache:", err)
		} else if doc != nil {
			return state.Upgrade(doc)
		}
	}
	if cache != nil {
		if doc := cache.Read(); doc != nil {
			log.Println("Loaded state from local cache")
			return state.Upgrade(doc)
		}
	}
	log.Println("No stored state found, starting from defaults")
	return models.DefaultDocument()
}
