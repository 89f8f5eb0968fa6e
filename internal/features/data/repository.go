package data

import (
	"context"
	"strings"

	"go-transformer/internal/common/models"
	"go-transformer/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DataRepository interface {
	Find(ctx context.Context, search string, skip, limit int64) ([]models.CRMRecord, error)
	Count(ctx context.Context, search string) (int64, error)
	FindByRef(ctx context.Context, ref string) (*models.CRMRecord, error)
	FindAll(ctx context.Context) ([]models.CRMRecord, error)
	InsertMany(ctx context.Context, records []models.CRMRecord) (int, error)
}

type DataRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewDataRepository(mongodb *database.MongodbDB) DataRepository {
	return &DataRepositoryImpl{
		Collection: mongodb.DB.Collection("crm_records"),
	}
}

func searchFilter(search string) bson.M {
	query := strings.TrimSpace(search)
	if query == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: regexQuote(query), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"customer_company": pattern},
		bson.M{"sales_request_ref": pattern},
	}}
}

func regexQuote(s string) string {
	special := `\.+*?()|[]{}^$`
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (r *DataRepositoryImpl) Find(ctx context.Context, search string, skip, limit int64) ([]models.CRMRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sales_request_ref", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, searchFilter(search), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.CRMRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *DataRepositoryImpl) Count(ctx context.Context, search string) (int64, error) {
	return r.Collection.CountDocuments(ctx, searchFilter(search))
}

func (r *DataRepositoryImpl) FindByRef(ctx context.Context, ref string) (*models.CRMRecord, error) {
	filter := bson.M{"sales_request_ref": primitive.Regex{
		Pattern: "^" + regexQuote(strings.TrimSpace(ref)) + "$",
		Options: "i",
	}}

	var record models.CRMRecord
	err := r.Collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *DataRepositoryImpl) FindAll(ctx context.Context) ([]models.CRMRecord, error) {
	return r.Find(ctx, "", 0, 0)
}

func (r *DataRepositoryImpl) InsertMany(ctx context.Context, records []models.CRMRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(records))
	for _, record := range records {
		docs = append(docs, record)
	}

	result, err := r.Collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(result.InsertedIDs), nil
}
