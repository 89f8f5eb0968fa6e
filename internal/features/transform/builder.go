package transform

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go-transformer/internal/common/models"
	"go-transformer/internal/features/rules"
)

// CRM dates arrive day-first (UK format); ISO dates from imports are
// accepted too.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2006-01-02",
	time.RFC3339,
}

func parseRecordDate(raw string) (time.Time, bool) {
	cleaned := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// toFloat parses a CRM numeric string leniently: commas and percent
// signs are stripped, blank means the default.
func toFloat(value string, defaultValue float64) (float64, bool) {
	cleaned := strings.TrimSpace(strings.NewReplacer(",", "", "%", "").Replace(value))
	if cleaned == "" {
		return defaultValue, true
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func parseTaxPercent(taxRate string) float64 {
	if strings.EqualFold(strings.TrimSpace(taxRate), "exempt") {
		return 0
	}
	parsed, ok := toFloat(taxRate, 0)
	if !ok {
		return 0
	}
	return parsed
}

// splitProduct separates "CODE - Description" into its parts; without
// the separator the first whitespace split is used, and a single token
// serves as both code and description.
func splitProduct(value string) (string, string) {
	if idx := strings.Index(value, " - "); idx >= 0 {
		return strings.TrimSpace(value[:idx]), strings.TrimSpace(value[idx+3:])
	}
	parts := strings.SplitN(strings.TrimSpace(value), " ", 2)
	if len(parts) == 2 {
		return parts[0], strings.TrimSpace(parts[1])
	}
	trimmed := strings.TrimSpace(value)
	return trimmed, trimmed
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func buildLineItems(record models.CRMRecord) ([]LineItem, error) {
	items := []LineItem{}
	for _, slot := range record.ProductSlots() {
		if strings.TrimSpace(slot.Product) == "" {
			continue
		}

		code, description := splitProduct(slot.Product)
		quantity, ok := toFloat(slot.Quantity, 0)
		if !ok {
			return nil, newInvalidRecordError(record.SalesRequestRef,
				"quantity %q on product %q is not a number", slot.Quantity, slot.Product)
		}
		unitPrice, ok := toFloat(slot.PricePerUnit, 0)
		if !ok {
			return nil, newInvalidRecordError(record.SalesRequestRef,
				"price %q on product %q is not a number", slot.PricePerUnit, slot.Product)
		}

		items = append(items, LineItem{
			ProductCode: code,
			Description: description,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			LineTotal:   round2(quantity * unitPrice),
		})
	}
	return items, nil
}

func requireRules(set rules.TransformRules) error {
	required := []struct {
		name   string
		absent bool
	}{
		{"customerNameMapping", set.CustomerNameMapping == nil},
		{"customerCountry", set.CustomerCountry == nil},
		{"salesTaxRate", set.SalesTaxRate == nil},
		{"termsAndConditions", set.TermsAndConditions == nil},
		{"paymentTerms", set.PaymentTerms == nil},
		{"paymentMethod", set.PaymentMethod == nil},
		{"deliveryDays", set.DeliveryDays == nil},
		{"customerReference", set.CustomerReference == nil},
		{"paymentReference", set.PaymentReference == nil},
	}
	for _, rule := range required {
		if rule.absent {
			return &MissingRuleError{RuleType: rule.name}
		}
	}
	return nil
}

// Build composes one ERP invoice from one CRM record. It never mutates
// its inputs; failures are per-record so batch callers keep going.
func Build(record models.CRMRecord, set rules.TransformRules) (ERPInvoice, error) {
	if err := requireRules(set); err != nil {
		return ERPInvoice{}, err
	}

	invoiceDate, ok := parseRecordDate(record.DateRaised)
	if !ok {
		return ERPInvoice{}, newInvalidRecordError(record.SalesRequestRef,
			"date_raised %q is not a recognizable date", record.DateRaised)
	}

	// The mapped customer name keys every conditional rule.
	customerName := set.CustomerNameMapping.Map(record.CustomerCompany)
	country := set.CustomerCountry.Resolve(customerName)
	taxRate := set.SalesTaxRate.Resolve(customerName)
	terms := set.TermsAndConditions.Resolve(customerName)
	paymentTerms := set.PaymentTerms.Resolve(customerName)
	paymentMethod := set.PaymentMethod.Resolve(customerName)
	deliveryDays := set.DeliveryDays.Resolve(customerName)

	deliveryDate := invoiceDate.AddDate(0, 0, deliveryDays)

	lineItems, err := buildLineItems(record)
	if err != nil {
		return ERPInvoice{}, err
	}

	subtotalBeforeDiscount := 0.0
	for _, item := range lineItems {
		subtotalBeforeDiscount += item.LineTotal
	}
	discountPercent, ok := toFloat(record.SalesDiscountPercent, 0)
	if !ok {
		return ERPInvoice{}, newInvalidRecordError(record.SalesRequestRef,
			"sales_discount_percent %q is not a number", record.SalesDiscountPercent)
	}

	subtotal := round2(subtotalBeforeDiscount * (1 - discountPercent/100))
	taxAmount := round2(subtotal * (parseTaxPercent(taxRate) / 100))
	total := round2(subtotal + taxAmount)

	customerReference := CustomerReference(record, customerName, *set.CustomerReference, invoiceDate.Year())
	paymentReference := PaymentReference(record, customerName, *set.PaymentReference, total)

	return ERPInvoice{
		SalesRequestRef:    record.SalesRequestRef,
		InvoiceDate:        invoiceDate.Format("2006-01-02"),
		SalesPerson:        record.SalesPerson,
		CustomerContact:    record.CustomerContact,
		TradingAddress:     record.TradingAddress,
		DeliveryAddress:    record.DeliveryAddress,
		DiscountPercent:    discountPercent,
		CustomerName:       customerName,
		Country:            country,
		TaxRate:            taxRate,
		TermsAndConditions: terms,
		PaymentTerms:       paymentTerms,
		PaymentMethod:      paymentMethod,
		DeliveryDate:       deliveryDate.Format("2006-01-02"),
		CustomerReference:  customerReference,
		PaymentReference:   paymentReference,
		LineItems:          lineItems,
		Subtotal:           subtotal,
		TaxAmount:          taxAmount,
		Total:              total,
	}, nil
}

// BuildBatch transforms every record, collecting per-record failures
// instead of aborting.
func BuildBatch(records []models.CRMRecord, set rules.TransformRules) BatchResult {
	result := BatchResult{MissingRefs: []string{}, Invoices: []ERPInvoice{}, Failures: []RecordFailure{}}
	for _, record := range records {
		invoice, err := Build(record, set)
		if err != nil {
			result.Failures = append(result.Failures, RecordFailure{
				SalesRequestRef: record.SalesRequestRef,
				Error:           err.Error(),
			})
			continue
		}
		result.Invoices = append(result.Invoices, invoice)
	}
	result.Count = len(result.Invoices)
	return result
}
