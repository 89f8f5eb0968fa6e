package schema

import (
	"context"

	"go-transformer/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const schemaDocType = "schema_store"

type SchemaRepository interface {
	Get(ctx context.Context) (*SchemaStore, error)
	Replace(ctx context.Context, store SchemaStore) error
}

type schemaDocument struct {
	Type string      `bson:"type"`
	Data SchemaStore `bson:"data"`
}

type SchemaRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewSchemaRepository(mongodb *database.MongodbDB) SchemaRepository {
	return &SchemaRepositoryImpl{
		Collection: mongodb.DB.Collection("schema_store"),
	}
}

func (r *SchemaRepositoryImpl) Get(ctx context.Context) (*SchemaStore, error) {
	var doc schemaDocument
	err := r.Collection.FindOne(ctx, bson.M{"type": schemaDocType}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &doc.Data, nil
}

func (r *SchemaRepositoryImpl) Replace(ctx context.Context, store SchemaStore) error {
	doc := schemaDocument{Type: schemaDocType, Data: store}
	opts := options.Replace().SetUpsert(true)
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"type": schemaDocType}, doc, opts)
	return err
}
