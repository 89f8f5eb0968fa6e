package transform

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go-transformer/internal/common/models"
	"go-transformer/internal/features/rules"
)

var (
	nonAlnumRe = regexp.MustCompile(`[^A-Za-z0-9]`)
	nonDigitRe = regexp.MustCompile(`[^0-9]`)
)

// prefixFromName compacts a customer name to an uppercase alphanumeric
// prefix of at most length characters, falling back when nothing is left.
func prefixFromName(name string, length int, fallback string) string {
	compact := strings.ToUpper(nonAlnumRe.ReplaceAllString(name, ""))
	if length >= 0 && len(compact) > length {
		compact = compact[:length]
	}
	if compact == "" {
		return strings.ToUpper(fallback)
	}
	return compact
}

// resolveSourceField reads a named record field, falling back to a
// second field when the first is blank.
func resolveSourceField(record models.CRMRecord, fieldName, fallbackField string) string {
	if primary := strings.TrimSpace(record.Field(fieldName)); primary != "" {
		return primary
	}
	return strings.TrimSpace(record.Field(fallbackField))
}

// buildInvoiceID extracts the digits of the source identifier and
// zero-pads them behind the configured prefix. A source without digits
// keeps its alphanumerics instead.
func buildInvoiceID(source, prefix string, padLength int) string {
	cleaned := strings.TrimSpace(source)
	if cleaned == "" {
		cleaned = "0"
	}

	suffix := nonDigitRe.ReplaceAllString(cleaned, "")
	if suffix == "" {
		suffix = strings.ToUpper(nonAlnumRe.ReplaceAllString(cleaned, ""))
	}
	if padLength > 0 && isDigits(suffix) {
		for len(suffix) < padLength {
			suffix = "0" + suffix
		}
	}

	normalizedPrefix := strings.ToUpper(nonAlnumRe.ReplaceAllString(prefix, ""))
	return normalizedPrefix + suffix
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CustomerReference derives the customer reference string. The year is
// passed explicitly so previews and fixtures stay reproducible.
func CustomerReference(record models.CRMRecord, customerName string, rule rules.CustomerReferenceRule, year int) string {
	prefix := prefixFromName(customerName, rule.CustomerNamePrefixLength, "CUS")
	source := resolveSourceField(record, rule.InvoiceIdSource, "sales_request_ref")
	invoiceID := buildInvoiceID(source, rule.InvoiceIdPrefix, rule.InvoiceIdPadLength)

	if rule.IncludeYear {
		return fmt.Sprintf("%s%d%s", prefix, year, invoiceID)
	}
	return prefix + invoiceID
}

// PaymentReference derives the payment reference string from the
// customer name, a CRM source identifier and the invoice total.
func PaymentReference(record models.CRMRecord, customerName string, rule rules.PaymentReferenceRule, total float64) string {
	prefix := prefixFromName(customerName, rule.CustomerNamePrefixLength, "PAYME")

	sourceID := resolveSourceField(record, rule.CrmSourceIdField, rule.FallbackSourceIdField)
	sourceID = strings.ToUpper(nonAlnumRe.ReplaceAllString(sourceID, ""))
	if sourceID == "" {
		sourceID = record.SalesRequestRef
	}

	totalPart := strconv.FormatFloat(total, 'f', -1, 64)
	if rule.UseInvoiceTotalWithoutDecimals {
		totalPart = strconv.FormatInt(int64(math.Trunc(total)), 10)
	}
	return prefix + sourceID + totalPart
}
