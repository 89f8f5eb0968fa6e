package assist

import (
	"context"
	"testing"

	"go.uber.org/zap"

	common_models "go-transformer/internal/common/models"
	"go-transformer/internal/features/rules"
)

type stubChatClient struct {
	response map[string]interface{}
	err      error
}

func (c *stubChatClient) CompleteJSON(ctx context.Context, systemPrompt string, payload interface{}) (map[string]interface{}, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.response, nil
}

type memoryRulesRepo struct {
	rules *rules.TransformRules
}

func (r *memoryRulesRepo) Get(ctx context.Context) (rules.TransformRules, error) {
	if r.rules == nil {
		return rules.TransformRules{
			Version:             "1.0.0",
			CustomerNameMapping: rules.MappingRule{"ACME": "ACME Corp"},
			CustomerCountry:     &rules.ConditionalStringRule{Default: "UK", Conditions: map[string]string{}},
			SalesTaxRate:        &rules.ConditionalStringRule{Default: "20%", Conditions: map[string]string{"ACME Corp": "19%"}},
			TermsAndConditions:  &rules.ConditionalStringRule{Default: "Standard Terms", Conditions: map[string]string{}},
			PaymentTerms:        &rules.ConditionalStringRule{Default: "30 Days", Conditions: map[string]string{}},
			PaymentMethod:       &rules.ConditionalStringRule{Default: "Bank Transfer", Conditions: map[string]string{}},
			DeliveryDays:        &rules.ConditionalIntRule{Default: 7, Conditions: map[string]int{}},
			CustomerReference:   rules.DefaultCustomerReferenceRule(),
			PaymentReference:    rules.DefaultPaymentReferenceRule(),
		}, nil
	}
	return *r.rules, nil
}

func (r *memoryRulesRepo) Replace(ctx context.Context, set rules.TransformRules) error {
	r.rules = &set
	return nil
}

type noopAudit struct{}

func (noopAudit) LogChange(ctx context.Context, action common_models.AuditAction, target string, changes map[string]common_models.Change) error {
	return nil
}

func (noopAudit) Recent(ctx context.Context, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

func newTestAssist(client ChatClient) (AssistService, rules.RulesService) {
	rulesService := rules.NewRulesService(&memoryRulesRepo{}, noopAudit{}, nil)
	return NewAssistService(client, rulesService, noopAudit{}, zap.NewNop()), rulesService
}

func TestExtractRuleName(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"create rule shippingMethod with default Road", "shippingMethod"},
		{"please add a new rule called currencyCode", "currencyCode"},
		{"the rule name is invoiceLabels", "invoiceLabels"},
		{"name of the rule will be erp_labels", "erp_labels"},
		{"what are my payment terms", ""},
	}
	for _, tc := range cases {
		if got := extractRuleName(tc.text); got != tc.want {
			t.Errorf("extractRuleName(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestCoerceRuleValue(t *testing.T) {
	cases := []struct {
		input string
		want  interface{}
	}{
		{"Road", "Road"},
		{`"Air Freight"`, "Air Freight"},
		{"true", true},
		{"False", false},
		{"14", 14},
		{"-3", -3},
		{"2.5", 2.5},
	}
	for _, tc := range cases {
		if got := coerceRuleValue(tc.input); got != tc.want {
			t.Errorf("coerceRuleValue(%q) = %v (%T), want %v", tc.input, got, got, tc.want)
		}
	}
}

func TestBuildRuleProposalFromText(t *testing.T) {
	current := map[string]interface{}{"version": "1.0.0"}

	updated, ruleName, ok := buildRuleProposalFromText(
		"create rule shippingMethod default is Road, for ACME Corp make it Air and for Globex set it Sea",
		current,
	)
	if !ok {
		t.Fatal("expected a proposal")
	}
	if ruleName != "shippingMethod" {
		t.Errorf("ruleName = %q", ruleName)
	}

	rule, ok := updated["shippingMethod"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing proposed rule: %v", updated)
	}
	if rule["_default"] != "Road" {
		t.Errorf("_default = %v", rule["_default"])
	}
	conditions, _ := rule["conditions"].(map[string]interface{})
	if conditions["ACME Corp"] != "Air" || conditions["Globex"] != "Sea" {
		t.Errorf("conditions = %v", conditions)
	}

	// Untouched keys survive, the input map is not mutated.
	if updated["version"] != "1.0.0" {
		t.Errorf("version lost: %v", updated)
	}
	if _, exists := current["shippingMethod"]; exists {
		t.Error("input rules map was mutated")
	}

	if _, _, ok := buildRuleProposalFromText("tell me about my rules", current); ok {
		t.Error("expected no proposal without a rule name")
	}
}

func TestDeterministicExplain(t *testing.T) {
	rulesMap := map[string]interface{}{
		"customerNameMapping": map[string]interface{}{"ACME": "ACME Corp"},
		"salesTaxRate": map[string]interface{}{
			"_default":   "20%",
			"conditions": map[string]interface{}{"ACME Corp": "19%"},
		},
		"paymentTerms": map[string]interface{}{
			"_default":   "30 Days",
			"conditions": map[string]interface{}{},
		},
	}

	response := deterministicExplain(rulesMap, "What tax rate applies to ACME?")
	if response.UsedAI {
		t.Error("fallback must report used_ai=false")
	}

	byType := map[string]ApplicableRule{}
	for _, entry := range response.ApplicableRules {
		byType[entry.RuleType] = entry
	}

	mapping := byType["customerNameMapping"]
	if mapping.MatchType != "mapping" || mapping.ResolvedValue != "ACME Corp" {
		t.Errorf("mapping entry = %+v", mapping)
	}
	tax := byType["salesTaxRate"]
	if tax.MatchType != "condition" || tax.ResolvedValue != "19%" {
		t.Errorf("tax entry = %+v", tax)
	}
	terms := byType["paymentTerms"]
	if terms.MatchType != "default" || terms.ResolvedValue != "30 Days" {
		t.Errorf("terms entry = %+v", terms)
	}

	noCustomer := deterministicExplain(rulesMap, "general question about defaults")
	if noCustomer.Summary != "No explicit customer detected in the situation; defaults were used." {
		t.Errorf("summary = %q", noCustomer.Summary)
	}
}

func TestCopilotProposalSafety(t *testing.T) {
	ctx := context.Background()
	service, rulesService := newTestAssist(&stubChatClient{err: ErrNoAIConfigured})

	before, err := rulesService.GetMap(ctx)
	if err != nil {
		t.Fatal(err)
	}

	response, err := service.Copilot(ctx, []ChatMessage{
		{Role: "user", Content: "create rule shippingMethod default is Road, for ACME Corp make it Air"},
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	if response.Mode != "proposal" || response.Applied {
		t.Errorf("expected unapplied proposal, got mode=%q applied=%v", response.Mode, response.Applied)
	}
	if len(response.Changes) == 0 {
		t.Error("expected changes in the proposal")
	}
	if response.StatePersisted {
		t.Error("state_persisted must be false")
	}

	// apply=false must leave the store untouched.
	after, err := rulesService.GetMap(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rules.Diff(before, after)) != 0 {
		t.Errorf("rule store changed on apply=false: %v", rules.Diff(before, after))
	}
}

func TestCopilotApplyIdempotent(t *testing.T) {
	ctx := context.Background()
	service, rulesService := newTestAssist(&stubChatClient{err: ErrNoAIConfigured})

	messages := []ChatMessage{
		{Role: "user", Content: "create rule shippingMethod default is Road, for ACME Corp make it Air"},
	}

	first, err := service.Copilot(ctx, messages, true)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Applied {
		t.Fatal("expected first apply to persist")
	}

	afterFirst, err := rulesService.GetMap(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := service.Copilot(ctx, messages, true); err != nil {
		t.Fatal(err)
	}
	afterSecond, err := rulesService.GetMap(ctx)
	if err != nil {
		t.Fatal(err)
	}

	// Applying the same proposal twice only moves the timestamp.
	for _, change := range rules.Diff(afterFirst, afterSecond) {
		if change.Path != "lastUpdated" {
			t.Errorf("unexpected change on re-apply: %+v", change)
		}
	}
}

func TestCopilotClarifyWithoutDetails(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestAssist(&stubChatClient{err: ErrNoAIConfigured})

	response, err := service.Copilot(ctx, []ChatMessage{
		{Role: "user", Content: "I want to set up a new rule"},
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	if response.Mode != "clarify" {
		t.Errorf("mode = %q, want clarify", response.Mode)
	}
	if len(response.Questions) == 0 {
		t.Error("clarify must carry follow-up questions")
	}
	if response.UpdatedRules != nil {
		t.Error("clarify must not carry a proposal")
	}
}

func TestCopilotRequiresUserMessage(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestAssist(&stubChatClient{err: ErrNoAIConfigured})

	_, err := service.Copilot(ctx, []ChatMessage{{Role: "system", Content: "hi"}}, false)
	if err == nil {
		t.Fatal("expected error for empty normalized messages")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}
