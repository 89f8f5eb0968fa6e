package transform

import (
	"context"
	"time"

	"go-transformer/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const batchDocType = "batch_output"

// OutputRepository holds the latest batch result as one document, the
// same single-document layout the rules and schema stores use.
type OutputRepository interface {
	Get(ctx context.Context) (*BatchResult, error)
	Replace(ctx context.Context, result BatchResult, actions map[string][]ActionOutcome) error
}

type batchDocument struct {
	Type      string                     `bson:"type"`
	Data      BatchResult                `bson:"data"`
	Actions   map[string][]ActionOutcome `bson:"actions,omitempty"`
	CreatedAt time.Time                  `bson:"created_at"`
}

type OutputRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewOutputRepository(mongodb *database.MongodbDB) OutputRepository {
	return &OutputRepositoryImpl{
		Collection: mongodb.DB.Collection("transformed_invoices"),
	}
}

func (r *OutputRepositoryImpl) Get(ctx context.Context) (*BatchResult, error) {
	var doc batchDocument
	err := r.Collection.FindOne(ctx, bson.M{"type": batchDocType}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &doc.Data, nil
}

func (r *OutputRepositoryImpl) Replace(ctx context.Context, result BatchResult, actions map[string][]ActionOutcome) error {
	doc := batchDocument{
		Type:      batchDocType,
		Data:      result,
		Actions:   actions,
		CreatedAt: time.Now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"type": batchDocType}, doc, opts)
	return err
}
