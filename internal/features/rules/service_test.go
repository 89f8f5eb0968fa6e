package rules

import (
	"context"
	"errors"
	"testing"

	common_models "go-transformer/internal/common/models"
)

type memoryRepo struct {
	rules TransformRules
	saves int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rules: defaultRules()}
}

func (r *memoryRepo) Get(ctx context.Context) (TransformRules, error) {
	return r.rules, nil
}

func (r *memoryRepo) Replace(ctx context.Context, rules TransformRules) error {
	r.rules = rules
	r.saves++
	return nil
}

type captureNotifier struct {
	events [][]RuleChange
}

func (n *captureNotifier) NotifyRulesChanged(changes []RuleChange) {
	n.events = append(n.events, changes)
}

type noopAudit struct{}

func (noopAudit) LogChange(ctx context.Context, action common_models.AuditAction, target string, changes map[string]common_models.Change) error {
	return nil
}

func (noopAudit) Recent(ctx context.Context, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

func newTestService() (*memoryRepo, *captureNotifier, RulesService) {
	repo := newMemoryRepo()
	notifier := &captureNotifier{}
	return repo, notifier, NewRulesService(repo, noopAudit{}, notifier)
}

func TestSaveRejectsDuplicateKeysBeforeWrite(t *testing.T) {
	repo, notifier, service := newTestService()

	payload := `{"salesTaxRate": {"_default": "20%", "conditions": {"ACME": "19%", "ACME": "21%"}}}`
	_, err := service.Save(context.Background(), []byte(payload))

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Save() error = %v, want *ValidationError", err)
	}
	if repo.saves != 0 {
		t.Errorf("repo saw %d writes, want 0", repo.saves)
	}
	if len(notifier.events) != 0 {
		t.Errorf("notifier saw %d events, want 0", len(notifier.events))
	}
}

func TestSaveRejectsIncompleteRuleSet(t *testing.T) {
	repo, _, service := newTestService()

	payload := fullRulesPayload()
	delete(payload, "customerCountry")

	_, err := service.Save(context.Background(), marshalPayload(t, payload))
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Save() error = %v, want *ValidationError", err)
	}
	if repo.saves != 0 {
		t.Errorf("repo saw %d writes, want 0", repo.saves)
	}

	// the rejected save must not wedge the store: single-rule updates
	// and full saves still work afterwards
	if _, err := service.UpdateRuleType(context.Background(), "salesTaxRate", []byte(`{"_default": "25%", "conditions": {}}`)); err != nil {
		t.Fatalf("UpdateRuleType() after rejected save error = %v", err)
	}
	stored, err := service.GetMap(context.Background())
	if err != nil {
		t.Fatalf("GetMap() error = %v", err)
	}
	if stored["customerCountry"] == nil {
		t.Error("customerCountry is null in the stored set")
	}
}

func TestSaveRejectsInvalidShapeBeforeWrite(t *testing.T) {
	repo, _, service := newTestService()

	payload := fullRulesPayload()
	payload["salesTaxRate"] = "flat"

	_, err := service.Save(context.Background(), marshalPayload(t, payload))

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Save() error = %v, want *ValidationError", err)
	}
	if repo.saves != 0 {
		t.Errorf("repo saw %d writes, want 0", repo.saves)
	}
}

func TestSaveStampsLastUpdatedAndNotifies(t *testing.T) {
	repo, notifier, service := newTestService()

	payload := `{
		"version": "1.0.0",
		"customerNameMapping": {"Acme": "ACME Corp"},
		"customerCountry": {"_default": "United Kingdom", "conditions": {"ACME Corp": "Germany"}},
		"salesTaxRate": {"_default": "20%", "conditions": {}},
		"termsAndConditions": {"_default": "Standard Terms", "conditions": {}},
		"paymentTerms": {"_default": "30 Days", "conditions": {}},
		"paymentMethod": {"_default": "Bank Transfer", "conditions": {}},
		"deliveryDays": {"_default": 7, "conditions": {}},
		"customerReference": {"customerNamePrefixLength": 3, "includeYear": true, "invoiceIdSource": "sales_request_ref", "invoiceIdPrefix": "INV", "invoiceIdPadLength": 4},
		"paymentReference": {"customerNamePrefixLength": 5, "crmSourceIdField": "crm_source_system_id", "fallbackSourceIdField": "sales_request_ref", "useInvoiceTotalWithoutDecimals": true}
	}`

	saved, err := service.Save(context.Background(), []byte(payload))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.LastUpdated == "" {
		t.Error("LastUpdated was not stamped")
	}
	if repo.saves != 1 {
		t.Errorf("repo saw %d writes, want 1", repo.saves)
	}
	if len(notifier.events) != 1 {
		t.Fatalf("notifier saw %d events, want 1", len(notifier.events))
	}

	found := false
	for _, change := range notifier.events[0] {
		if change.Path == "customerCountry.conditions.ACME Corp" && change.After == "Germany" {
			found = true
		}
	}
	if !found {
		t.Errorf("notifier events %#v missing customerCountry change", notifier.events[0])
	}
}

func TestUpdateRuleTypeMergesIntoSet(t *testing.T) {
	repo, _, service := newTestService()

	payload := `{"_default": "25%", "conditions": {"ACME Corp": "19%"}}`
	saved, err := service.UpdateRuleType(context.Background(), "salesTaxRate", []byte(payload))
	if err != nil {
		t.Fatalf("UpdateRuleType() error = %v", err)
	}

	if saved.SalesTaxRate.Default != "25%" {
		t.Errorf("salesTaxRate _default = %q, want 25%%", saved.SalesTaxRate.Default)
	}
	if saved.SalesTaxRate.Conditions["ACME Corp"] != "19%" {
		t.Errorf("condition = %q, want 19%%", saved.SalesTaxRate.Conditions["ACME Corp"])
	}
	// untouched rules survive the merge
	if repo.rules.PaymentTerms == nil || repo.rules.PaymentTerms.Default != "30 Days" {
		t.Error("paymentTerms was lost by a single-rule update")
	}
}

func TestUpdateUnknownRuleType(t *testing.T) {
	_, _, service := newTestService()

	_, err := service.UpdateRuleType(context.Background(), "noSuchRule", []byte(`{"_default": "x"}`))

	var notFound *RuleNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("UpdateRuleType() error = %v, want *RuleNotFoundError", err)
	}
}

func TestGetRuleType(t *testing.T) {
	_, _, service := newTestService()

	value, err := service.GetRuleType(context.Background(), "deliveryDays")
	if err != nil {
		t.Fatalf("GetRuleType() error = %v", err)
	}
	rule, ok := value.(map[string]interface{})
	if !ok {
		t.Fatalf("deliveryDays = %T, want object", value)
	}
	if rule["_default"] != float64(7) {
		t.Errorf("_default = %v, want 7", rule["_default"])
	}
}
