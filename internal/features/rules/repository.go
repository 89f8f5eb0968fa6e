package rules

import (
	"context"
	"encoding/json"
	"time"

	"go-transformer/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const rulesDocType = "transform_rules"

type RulesRepository interface {
	Get(ctx context.Context) (TransformRules, error)
	Replace(ctx context.Context, rules TransformRules) error
}

type rulesDocument struct {
	Type      string    `bson:"type"`
	Data      bson.M    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type RulesRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewRulesRepository(mongodb *database.MongodbDB) RulesRepository {
	return &RulesRepositoryImpl{
		Collection: mongodb.DB.Collection("transform_rules"),
	}
}

func (r *RulesRepositoryImpl) Get(ctx context.Context) (TransformRules, error) {
	var doc rulesDocument
	err := r.Collection.FindOne(ctx, bson.M{"type": rulesDocType}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return defaultRules(), nil
		}
		return TransformRules{}, err
	}

	payload, err := json.Marshal(doc.Data)
	if err != nil {
		return TransformRules{}, err
	}

	var parsed TransformRules
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return TransformRules{}, err
	}
	return parsed, nil
}

// Replace swaps the whole rule set in one upsert. The document is the
// unit of atomicity: either the new set lands completely or not at all.
func (r *RulesRepositoryImpl) Replace(ctx context.Context, rules TransformRules) error {
	payload, err := json.Marshal(rules)
	if err != nil {
		return err
	}

	var data bson.M
	if err := json.Unmarshal(payload, &data); err != nil {
		return err
	}

	doc := rulesDocument{
		Type:      rulesDocType,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}

	opts := options.Replace().SetUpsert(true)
	_, err = r.Collection.ReplaceOne(ctx, bson.M{"type": rulesDocType}, doc, opts)
	return err
}

func defaultRules() TransformRules {
	return TransformRules{
		Version:             "1.0.0",
		LastUpdated:         time.Now().UTC().Format(time.RFC3339),
		CustomerNameMapping: MappingRule{},
		CustomerCountry:     &ConditionalStringRule{Default: "United Kingdom", Conditions: map[string]string{}},
		SalesTaxRate:        &ConditionalStringRule{Default: "20%", Conditions: map[string]string{}},
		TermsAndConditions:  &ConditionalStringRule{Default: "Standard Terms", Conditions: map[string]string{}},
		PaymentTerms:        &ConditionalStringRule{Default: "30 Days", Conditions: map[string]string{}},
		PaymentMethod:       &ConditionalStringRule{Default: "Bank Transfer", Conditions: map[string]string{}},
		DeliveryDays:        &ConditionalIntRule{Default: 7, Conditions: map[string]int{}},
		CustomerReference:   DefaultCustomerReferenceRule(),
		PaymentReference:    DefaultPaymentReferenceRule(),
		Extra:               map[string]json.RawMessage{},
	}
}
