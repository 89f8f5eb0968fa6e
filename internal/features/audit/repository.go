package audit

import (
	"context"

	common_models "go-transformer/internal/common/models"
	"go-transformer/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditRepository interface {
	Insert(ctx context.Context, entry *common_models.AuditLog) error
	FindRecent(ctx context.Context, limit int64) ([]common_models.AuditLog, error)
}

type AuditRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewAuditRepository(mongodb *database.MongodbDB) AuditRepository {
	return &AuditRepositoryImpl{
		Collection: mongodb.DB.Collection("audit_logs"),
	}
}

func (r *AuditRepositoryImpl) Insert(ctx context.Context, entry *common_models.AuditLog) error {
	_, err := r.Collection.InsertOne(ctx, entry)
	return err
}

func (r *AuditRepositoryImpl) FindRecent(ctx context.Context, limit int64) ([]common_models.AuditLog, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(limit)
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []common_models.AuditLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
