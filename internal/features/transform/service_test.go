package transform

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"go-transformer/internal/common/models"
	"go-transformer/internal/features/rules"
	"go-transformer/internal/features/schema"
)

type stubRecords struct {
	records []models.CRMRecord
}

func (s *stubRecords) ListRecords(ctx context.Context) ([]models.CRMRecord, error) {
	return s.records, nil
}

func (s *stubRecords) FindByRef(ctx context.Context, ref string) (*models.CRMRecord, error) {
	for _, record := range s.records {
		if record.SalesRequestRef == ref {
			found := record
			return &found, nil
		}
	}
	return nil, nil
}

// stubRulesService overrides Get; the embedded interface covers the
// methods a batch run never touches.
type stubRulesService struct {
	rules.RulesService
}

func (stubRulesService) Get(ctx context.Context) (rules.TransformRules, error) {
	return fixtureRules(), nil
}

type stubSchemaService struct {
	schema.SchemaService
}

func (stubSchemaService) Get(ctx context.Context) (schema.SchemaStore, error) {
	return schema.SchemaStore{}, nil
}

type memOutputRepo struct {
	saved *BatchResult
}

func (r *memOutputRepo) Get(ctx context.Context) (*BatchResult, error) {
	return r.saved, nil
}

func (r *memOutputRepo) Replace(ctx context.Context, result BatchResult, actions map[string][]ActionOutcome) error {
	copied := result
	r.saved = &copied
	return nil
}

type noopActions struct{}

func (noopActions) Execute(actions map[string]schema.PostTransformationAction, invoice ERPInvoice) []ActionOutcome {
	return nil
}

type noopAuditService struct{}

func (noopAuditService) LogChange(ctx context.Context, action models.AuditAction, target string, changes map[string]models.Change) error {
	return nil
}

func (noopAuditService) Recent(ctx context.Context, limit int64) ([]models.AuditLog, error) {
	return nil, nil
}

func newBatchFixture() (*memOutputRepo, TransformService) {
	second := fixtureRecord()
	second.SalesRequestRef = "SR-0055"

	output := &memOutputRepo{}
	service := NewTransformService(
		&stubRecords{records: []models.CRMRecord{fixtureRecord(), second}},
		stubRulesService{},
		stubSchemaService{},
		output,
		noopActions{},
		nil,
		noopAuditService{},
		zap.NewNop(),
	)
	return output, service
}

func TestRunBatchSubsetSelection(t *testing.T) {
	output, service := newBatchFixture()

	result, err := service.RunBatch(context.Background(), []string{"SR-0042", "SR-9999"})
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}

	if result.Count != 1 {
		t.Errorf("Count = %d, want 1", result.Count)
	}
	if len(result.Invoices) != 1 || result.Invoices[0].SalesRequestRef != "SR-0042" {
		t.Errorf("Invoices = %+v, want only SR-0042", result.Invoices)
	}
	if !reflect.DeepEqual(result.MissingRefs, []string{"SR-9999"}) {
		t.Errorf("MissingRefs = %v, want [SR-9999]", result.MissingRefs)
	}
	if output.saved == nil || output.saved.Count != 1 {
		t.Error("subset batch output was not saved")
	}
}

func TestRunBatchAllRefsUnknown(t *testing.T) {
	output, service := newBatchFixture()

	_, err := service.RunBatch(context.Background(), []string{"SR-9999"})
	if !errors.Is(err, ErrNoRefsMatched) {
		t.Fatalf("RunBatch() error = %v, want ErrNoRefsMatched", err)
	}
	if output.saved != nil {
		t.Error("output was saved for a batch that matched nothing")
	}
}

func TestRunBatchWithoutRefsTransformsEverything(t *testing.T) {
	_, service := newBatchFixture()

	result, err := service.RunBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if result.Count != 2 {
		t.Errorf("Count = %d, want 2", result.Count)
	}
	if len(result.MissingRefs) != 0 {
		t.Errorf("MissingRefs = %v, want empty", result.MissingRefs)
	}
}
