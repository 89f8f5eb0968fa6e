package rules

import (
	"encoding/json"
	"sort"
)

// ConditionalStringRule is a keyed lookup with a fallback default.
// Condition keys are literal, case-sensitive match candidates.
type ConditionalStringRule struct {
	Default    string            `json:"_default"`
	Conditions map[string]string `json:"conditions"`
}

// ConditionalIntRule is the integer-valued variant (e.g. delivery days).
type ConditionalIntRule struct {
	Default    int            `json:"_default"`
	Conditions map[string]int `json:"conditions"`
}

// MappingRule is a keyed lookup with identity fallback: unmapped input
// passes through unchanged.
type MappingRule map[string]string

// CustomerReferenceRule configures customer reference synthesis.
type CustomerReferenceRule struct {
	CustomerNamePrefixLength int    `json:"customerNamePrefixLength"`
	IncludeYear              bool   `json:"includeYear"`
	InvoiceIdSource          string `json:"invoiceIdSource"`
	InvoiceIdPrefix          string `json:"invoiceIdPrefix"`
	InvoiceIdPadLength       int    `json:"invoiceIdPadLength"`
}

// PaymentReferenceRule configures payment reference synthesis.
type PaymentReferenceRule struct {
	CustomerNamePrefixLength       int    `json:"customerNamePrefixLength"`
	CrmSourceIdField               string `json:"crmSourceIdField"`
	FallbackSourceIdField          string `json:"fallbackSourceIdField"`
	UseInvoiceTotalWithoutDecimals bool   `json:"useInvoiceTotalWithoutDecimals"`
}

// DefaultCustomerReferenceRule mirrors the shipped rule-set defaults.
func DefaultCustomerReferenceRule() *CustomerReferenceRule {
	return &CustomerReferenceRule{
		CustomerNamePrefixLength: 3,
		IncludeYear:              true,
		InvoiceIdSource:          "sales_request_ref",
		InvoiceIdPrefix:          "INV",
		InvoiceIdPadLength:       4,
	}
}

func DefaultPaymentReferenceRule() *PaymentReferenceRule {
	return &PaymentReferenceRule{
		CustomerNamePrefixLength:       5,
		CrmSourceIdField:               "crm_source_system_id",
		FallbackSourceIdField:          "sales_request_ref",
		UseInvoiceTotalWithoutDecimals: true,
	}
}

// TransformRules is the aggregate rule set. Known rule names are typed;
// user-created top-level rules are preserved verbatim in Extra so the
// AI flow can add new rules without schema changes.
type TransformRules struct {
	Version             string                 `json:"version"`
	LastUpdated         string                 `json:"lastUpdated"`
	CustomerNameMapping MappingRule            `json:"customerNameMapping"`
	CustomerCountry     *ConditionalStringRule `json:"customerCountry"`
	SalesTaxRate        *ConditionalStringRule `json:"salesTaxRate"`
	TermsAndConditions  *ConditionalStringRule `json:"termsAndConditions"`
	PaymentTerms        *ConditionalStringRule `json:"paymentTerms"`
	PaymentMethod       *ConditionalStringRule `json:"paymentMethod"`
	DeliveryDays        *ConditionalIntRule    `json:"deliveryDays"`
	CustomerReference   *CustomerReferenceRule `json:"customerReference"`
	PaymentReference    *PaymentReferenceRule  `json:"paymentReference"`

	Extra map[string]json.RawMessage `json:"-"`
}

var knownRuleKeys = map[string]bool{
	"version":             true,
	"lastUpdated":         true,
	"customerNameMapping": true,
	"customerCountry":     true,
	"salesTaxRate":        true,
	"termsAndConditions":  true,
	"paymentTerms":        true,
	"paymentMethod":       true,
	"deliveryDays":        true,
	"customerReference":   true,
	"paymentReference":    true,
}

// ConditionalRuleTypes lists the conditional rule names in resolution order.
var ConditionalRuleTypes = []string{
	"customerCountry",
	"salesTaxRate",
	"termsAndConditions",
	"paymentTerms",
	"paymentMethod",
	"deliveryDays",
}

type transformRulesAlias TransformRules

func (t *TransformRules) UnmarshalJSON(data []byte) error {
	var alias transformRulesAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	alias.Extra = map[string]json.RawMessage{}
	for key, value := range raw {
		if !knownRuleKeys[key] {
			alias.Extra[key] = value
		}
	}

	*t = TransformRules(alias)
	return nil
}

func (t TransformRules) MarshalJSON() ([]byte, error) {
	payload, err := json.Marshal(transformRulesAlias(t))
	if err != nil {
		return nil, err
	}

	if len(t.Extra) == 0 {
		return payload, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(payload, &merged); err != nil {
		return nil, err
	}
	for key, value := range t.Extra {
		merged[key] = value
	}
	return json.Marshal(merged)
}

// ToMap renders the rule set as a generic JSON object, extras included.
func (t TransformRules) ToMap() (map[string]interface{}, error) {
	payload, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RuleTypes returns every top-level rule name present in the set.
func (t TransformRules) RuleTypes() []string {
	names := make([]string, 0, len(knownRuleKeys)+len(t.Extra))
	for key := range knownRuleKeys {
		names = append(names, key)
	}
	for key := range t.Extra {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}
