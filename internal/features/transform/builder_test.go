package transform

import (
	"errors"
	"testing"

	"go-transformer/internal/common/models"
	"go-transformer/internal/features/rules"
)

func fixtureRules() rules.TransformRules {
	return rules.TransformRules{
		Version:             "1.0.0",
		CustomerNameMapping: rules.MappingRule{"ACME": "ACME Corp"},
		CustomerCountry: &rules.ConditionalStringRule{
			Default:    "UK",
			Conditions: map[string]string{"ACME Corp": "Germany"},
		},
		SalesTaxRate: &rules.ConditionalStringRule{
			Default:    "20%",
			Conditions: map[string]string{"Charity Org": "Exempt"},
		},
		TermsAndConditions: &rules.ConditionalStringRule{Default: "Standard Terms"},
		PaymentTerms:       &rules.ConditionalStringRule{Default: "30 Days"},
		PaymentMethod:      &rules.ConditionalStringRule{Default: "Bank Transfer"},
		DeliveryDays: &rules.ConditionalIntRule{
			Default:    7,
			Conditions: map[string]int{"ACME Corp": 2},
		},
		CustomerReference: rules.DefaultCustomerReferenceRule(),
		PaymentReference:  rules.DefaultPaymentReferenceRule(),
	}
}

func fixtureRecord() models.CRMRecord {
	return models.CRMRecord{
		SalesRequestRef:      "SR-0042",
		DateRaised:           "15/03/2024",
		SalesPerson:          "J. Smith",
		CustomerCompany:      "ACME",
		CustomerContact:      "buyer@acme.example",
		SalesDiscountPercent: "10",
		Product1:             "WID-1 - Widget",
		Product1Quantity:     "2",
		Product1PricePerUnit: "10.50",
		Product2:             "GAD-2 - Gadget",
		Product2Quantity:     "3",
		Product2PricePerUnit: "5",
	}
}

func TestBuildInvoice(t *testing.T) {
	invoice, err := Build(fixtureRecord(), fixtureRules())
	if err != nil {
		t.Fatal(err)
	}

	if invoice.CustomerName != "ACME Corp" {
		t.Errorf("CustomerName = %q, want ACME Corp", invoice.CustomerName)
	}
	if invoice.Country != "Germany" {
		t.Errorf("Country = %q, want Germany", invoice.Country)
	}
	if invoice.TaxRate != "20%" {
		t.Errorf("TaxRate = %q, want 20%%", invoice.TaxRate)
	}

	// Day-first date plus two delivery days.
	if invoice.InvoiceDate != "2024-03-15" {
		t.Errorf("InvoiceDate = %q, want 2024-03-15", invoice.InvoiceDate)
	}
	if invoice.DeliveryDate != "2024-03-17" {
		t.Errorf("DeliveryDate = %q, want 2024-03-17", invoice.DeliveryDate)
	}

	if len(invoice.LineItems) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(invoice.LineItems))
	}
	for _, item := range invoice.LineItems {
		if item.LineTotal != round2(item.Quantity*item.UnitPrice) {
			t.Errorf("line total %v != quantity*price for %s", item.LineTotal, item.ProductCode)
		}
	}
	first := invoice.LineItems[0]
	if first.ProductCode != "WID-1" || first.Description != "Widget" {
		t.Errorf("unexpected first line item: %+v", first)
	}

	// 36.00 gross, 10% discount, then 20% tax on the discounted subtotal.
	if invoice.Subtotal != 32.40 {
		t.Errorf("Subtotal = %v, want 32.40", invoice.Subtotal)
	}
	if invoice.TaxAmount != 6.48 {
		t.Errorf("TaxAmount = %v, want 6.48", invoice.TaxAmount)
	}
	if invoice.Total != 38.88 {
		t.Errorf("Total = %v, want 38.88", invoice.Total)
	}

	if invoice.CustomerReference != "ACM2024INV0042" {
		t.Errorf("CustomerReference = %q", invoice.CustomerReference)
	}
	if invoice.PaymentReference != "ACMEC"+"SR0042"+"38" {
		t.Errorf("PaymentReference = %q", invoice.PaymentReference)
	}
}

func TestBuildExemptTax(t *testing.T) {
	set := fixtureRules()
	record := fixtureRecord()
	record.CustomerCompany = "Charity Org"
	record.SalesDiscountPercent = ""

	invoice, err := Build(record, set)
	if err != nil {
		t.Fatal(err)
	}
	if invoice.TaxRate != "Exempt" {
		t.Errorf("TaxRate = %q, want Exempt", invoice.TaxRate)
	}
	if invoice.TaxAmount != 0 {
		t.Errorf("TaxAmount = %v, want 0", invoice.TaxAmount)
	}
	if invoice.Total != invoice.Subtotal {
		t.Errorf("Total %v should equal Subtotal %v when exempt", invoice.Total, invoice.Subtotal)
	}
}

func TestBuildSkipsEmptyProductSlots(t *testing.T) {
	record := fixtureRecord()
	record.Product2 = ""
	record.Product3 = "  "

	invoice, err := Build(record, fixtureRules())
	if err != nil {
		t.Fatal(err)
	}
	if len(invoice.LineItems) != 1 {
		t.Errorf("expected 1 line item, got %d", len(invoice.LineItems))
	}
}

func TestBuildMissingRule(t *testing.T) {
	set := fixtureRules()
	set.DeliveryDays = nil

	_, err := Build(fixtureRecord(), set)
	var missing *MissingRuleError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRuleError, got %v", err)
	}
	if missing.RuleType != "deliveryDays" {
		t.Errorf("RuleType = %q, want deliveryDays", missing.RuleType)
	}
}

func TestBuildInvalidRecord(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.CRMRecord)
	}{
		{"bad quantity", func(r *models.CRMRecord) { r.Product1Quantity = "two" }},
		{"bad price", func(r *models.CRMRecord) { r.Product1PricePerUnit = "ten" }},
		{"bad date", func(r *models.CRMRecord) { r.DateRaised = "sometime" }},
		{"bad discount", func(r *models.CRMRecord) { r.SalesDiscountPercent = "lots" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := fixtureRecord()
			tc.mutate(&record)

			_, err := Build(record, fixtureRules())
			var invalid *InvalidRecordError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidRecordError, got %v", err)
			}
		})
	}
}

func TestBuildBatchCollectsFailures(t *testing.T) {
	good := fixtureRecord()
	bad := fixtureRecord()
	bad.SalesRequestRef = "SR-0043"
	bad.Product1Quantity = "many"

	result := BuildBatch([]models.CRMRecord{good, bad, good}, fixtureRules())

	if result.Count != 2 || len(result.Invoices) != 2 {
		t.Errorf("expected 2 invoices, got %d", result.Count)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(result.Failures))
	}
	if result.Failures[0].SalesRequestRef != "SR-0043" {
		t.Errorf("failure ref = %q", result.Failures[0].SalesRequestRef)
	}
}
