//go:build !(js && wasm)

package body

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/voyager/pkg/errors"
)

// DefaultMongoDatabase and DefaultMongoCollection name where bodies live
// when no explicit database or collection is configured.
const (
	DefaultMongoDatabase   = "voyager"
	DefaultMongoCollection = "bodies"
)

// mongoDocument is a body as stored in MongoDB. The document id is the body id.
type mongoDocument struct {
	ID     string   `bson:"_id"`
	Name   string   `bson:"name"`
	Radius *float64 `bson:"radius"`
	Height *float64 `bson:"height"`
	Color  string   `bson:"color"`
	Text   string   `bson:"text"`
}

func (d mongoDocument) record() record {
	return record{Name: d.Name, Radius: d.Radius, Height: d.Height, Color: d.Color, Text: d.Text}
}

// MongoSource loads bodies from a MongoDB collection.
//
// Documents use the body id as _id and carry the same fields as data.json,
// with the descriptive text inline in a "text" field.
type MongoSource struct {
	Collection *mongo.Collection
	Logger     *log.Logger
}

// MongoConfig holds connection settings for [ConnectMongo].
type MongoConfig struct {
	URI        string        `toml:"uri"`
	Database   string        `toml:"database"`
	Collection string        `toml:"collection"`
	Timeout    time.Duration `toml:"timeout"`
}

// ConnectMongo connects to MongoDB and returns a source bound to the
// configured collection. The returned close function disconnects the client.
func ConnectMongo(ctx context.Context, cfg MongoConfig, logger *log.Logger) (*MongoSource, func(context.Context) error, error) {
	if cfg.URI == "" {
		return nil, nil, errors.New(errors.ErrCodeInvalidConfig, "mongo uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongo")
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongo")
	}

	src := &MongoSource{
		Collection: client.Database(cfg.Database).Collection(cfg.Collection),
		Logger:     logger,
	}
	return src, client.Disconnect, nil
}

// String names the source for logs.
func (s *MongoSource) String() string {
	if s.Collection == nil {
		return "mongo"
	}
	return "mongo:" + s.Collection.Database().Name() + "." + s.Collection.Name()
}

// Load reads every document in the collection and returns the valid bodies
// sorted by radius. Invalid documents are skipped with a warning.
func (s *MongoSource) Load(ctx context.Context) ([]Body, error) {
	logger := s.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	cur, err := s.Collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "find bodies")
	}
	defer cur.Close(ctx)

	var bodies []Body
	for cur.Next(ctx) {
		var doc mongoDocument
		if err := cur.Decode(&doc); err != nil {
			logger.Warn("skipping document", "err", err)
			continue
		}
		b, err := normalize(doc.ID, doc.record())
		if err != nil {
			logger.Warn("skipping body", "id", doc.ID, "err", err)
			continue
		}
		bodies = append(bodies, b)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate bodies: %w", err)
	}

	Sort(bodies)
	return bodies, nil
}

// Ensure MongoSource implements Source.
var _ Source = (*MongoSource)(nil)
