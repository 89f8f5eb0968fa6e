package transform

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-transformer/internal/common/models"
	"go-transformer/internal/features/audit"
	"go-transformer/internal/features/rules"
	"go-transformer/internal/features/schema"
)

// RecordSource is the CRM side of a transform run.
type RecordSource interface {
	ListRecords(ctx context.Context) ([]models.CRMRecord, error)
	FindByRef(ctx context.Context, ref string) (*models.CRMRecord, error)
}

// InvoicePusher delivers finished invoices to the downstream ERP. A nil
// pusher means no ERP connection is configured.
type InvoicePusher interface {
	Push(ctx context.Context, invoices []ERPInvoice) error
}

type TransformService interface {
	Preview(ctx context.Context, ref string) (ERPInvoice, error)
	PreviewRecord(ctx context.Context, record models.CRMRecord) (ERPInvoice, error)
	// RunBatch transforms the named records, or every stored record
	// when refs is empty. Unknown refs are reported, not fatal, unless
	// nothing matched at all.
	RunBatch(ctx context.Context, refs []string) (BatchResult, error)
	Output(ctx context.Context) (BatchResult, error)
}

type TransformServiceImpl struct {
	Records      RecordSource
	Rules        rules.RulesService
	Schema       schema.SchemaService
	OutputRepo   OutputRepository
	Actions      ActionExecutor
	Pusher       InvoicePusher
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewTransformService(
	records RecordSource,
	rulesService rules.RulesService,
	schemaService schema.SchemaService,
	output OutputRepository,
	actions ActionExecutor,
	pusher InvoicePusher,
	auditService audit.AuditService,
	logger *zap.Logger,
) TransformService {
	return &TransformServiceImpl{
		Records:      records,
		Rules:        rulesService,
		Schema:       schemaService,
		OutputRepo:   output,
		Actions:      actions,
		Pusher:       pusher,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *TransformServiceImpl) Preview(ctx context.Context, ref string) (ERPInvoice, error) {
	record, err := s.Records.FindByRef(ctx, ref)
	if err != nil {
		return ERPInvoice{}, err
	}
	if record == nil {
		return ERPInvoice{}, newInvalidRecordError(ref, "no CRM record with this sales request ref")
	}
	return s.PreviewRecord(ctx, *record)
}

func (s *TransformServiceImpl) PreviewRecord(ctx context.Context, record models.CRMRecord) (ERPInvoice, error) {
	ruleSet, err := s.Rules.Get(ctx)
	if err != nil {
		return ERPInvoice{}, err
	}
	return Build(record, ruleSet)
}

func (s *TransformServiceImpl) RunBatch(ctx context.Context, refs []string) (BatchResult, error) {
	var records []models.CRMRecord
	missing := []string{}

	if len(refs) > 0 {
		for _, ref := range refs {
			record, err := s.Records.FindByRef(ctx, ref)
			if err != nil {
				return BatchResult{}, err
			}
			if record == nil {
				missing = append(missing, ref)
				continue
			}
			records = append(records, *record)
		}
		if len(records) == 0 {
			return BatchResult{}, ErrNoRefsMatched
		}
	} else {
		all, err := s.Records.ListRecords(ctx)
		if err != nil {
			return BatchResult{}, err
		}
		records = all
	}

	ruleSet, err := s.Rules.Get(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	result := BuildBatch(records, ruleSet)
	result.MissingRefs = missing

	store, err := s.Schema.Get(ctx)
	if err != nil {
		return BatchResult{}, err
	}
	actionOutcomes := map[string][]ActionOutcome{}
	for _, invoice := range result.Invoices {
		outcomes := s.Actions.Execute(store.PostTransformationActions, invoice)
		if len(outcomes) > 0 {
			actionOutcomes[invoice.SalesRequestRef] = outcomes
		}
	}

	if err := s.OutputRepo.Replace(ctx, result, actionOutcomes); err != nil {
		return BatchResult{}, err
	}

	if s.Pusher != nil && len(result.Invoices) > 0 {
		if err := s.Pusher.Push(ctx, result.Invoices); err != nil {
			// The batch output is already saved; a push failure is
			// logged and surfaced through the failure list.
			s.Logger.Error("ERP push failed",
				zap.String("feature", "transform"),
				zap.Error(err))
			result.Failures = append(result.Failures, RecordFailure{
				SalesRequestRef: "*",
				Error:           fmt.Sprintf("ERP push failed: %v", err),
			})
		}
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionTransform, "batch", map[string]models.Change{
		"count":    {Old: nil, New: result.Count},
		"failures": {Old: nil, New: len(result.Failures)},
	})

	s.Logger.Info("batch transform complete",
		zap.String("feature", "transform"),
		zap.Int("invoices", result.Count),
		zap.Int("failures", len(result.Failures)))

	return result, nil
}

func (s *TransformServiceImpl) Output(ctx context.Context) (BatchResult, error) {
	saved, err := s.OutputRepo.Get(ctx)
	if err != nil {
		return BatchResult{}, err
	}
	if saved == nil {
		return BatchResult{Count: 0, Invoices: []ERPInvoice{}}, nil
	}
	return *saved, nil
}
