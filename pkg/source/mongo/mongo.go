package mongo

import (
	"context"
	"time"

	"github.com/barekit/cohort/pkg/document"
	"github.com/barekit/cohort/pkg/source/consts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSource implements source.DocumentSource using MongoDB.
type MongoSource struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// DocumentDoc is the stored shape of a session document.
type DocumentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	SessionID string             `bson:"session_id"`
	Name      string             `bson:"name"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"created_at"`
}

// New creates a new MongoSource adapter.
func New(client *mongo.Client, dbName, collectionName string) *MongoSource {
	return &MongoSource{
		client:     client,
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Add stores a document for a session.
func (m *MongoSource) Add(ctx context.Context, sessionID, name, text string) error {
	doc := DocumentDoc{
		SessionID: sessionID,
		Name:      name,
		Text:      text,
		CreatedAt: time.Now(),
	}
	_, err := m.collection.InsertOne(ctx, doc)
	return err
}

// ListDocuments loads all documents owned by a session, oldest first.
func (m *MongoSource) ListDocuments(ctx context.Context, sessionID string) ([]document.Document, error) {
	filter := bson.M{consts.ColSessionID: sessionID}
	opts := options.Find().SetSort(bson.M{consts.ColCreatedAt: 1})

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []document.Document
	for cursor.Next(ctx) {
		var doc DocumentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, document.Document{
			ID:   doc.ID.Hex(),
			Name: doc.Name,
			Text: doc.Text,
		})
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}
