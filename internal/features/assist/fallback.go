package assist

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// The deterministic assistant takes over whenever no AI key is
// configured or the AI call fails: it answers explain and copilot
// requests from the rule set alone, using pattern matching on the
// user's text.

var conditionalRuleTypes = []string{
	"customerCountry",
	"salesTaxRate",
	"termsAndConditions",
	"paymentTerms",
	"paymentMethod",
	"deliveryDays",
}

var erpTopLevelFields = []string{
	"sales_request_ref",
	"invoice_date",
	"sales_person",
	"customer_contact",
	"trading_address",
	"delivery_address",
	"discount_percent",
	"customer_name",
	"country",
	"tax_rate",
	"terms_and_conditions",
	"payment_terms",
	"payment_method",
	"delivery_date",
	"customer_reference",
	"payment_reference",
	"line_items",
	"subtotal",
	"tax_amount",
	"total",
}

var erpLineItemFields = []string{
	"product_code",
	"description",
	"quantity",
	"unit_price",
	"line_total",
}

var ruleNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:create|add|new|update)\s+(?:a\s+)?(?:new\s+)?rule(?:\s+(?:called|named))?\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
	regexp.MustCompile(`(?i)rule\s+name\s+(?:is|will\s+be)\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
	regexp.MustCompile(`(?i)name\s+of\s+the\s+rule\s+(?:is|will\s+be)\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
}

var (
	clauseJoinRe   = regexp.MustCompile(`(?i)\s+(?:but|and)\s+for\b`)
	defaultValueRe = regexp.MustCompile(`(?i)default(?:\s+value)?\s*(?:is|to|=)?\s*(.+)$`)
	conditionRe    = regexp.MustCompile(`(?i)\bfor\s+([a-zA-Z0-9 _\-.]+?)\s+(?:make(?:\s+it)?|set(?:\s+it)?|is|to|=)\s+(.+)$`)
	columnPairRe   = regexp.MustCompile(`(?i)([a-zA-Z_][a-zA-Z0-9_.]*)\s*->\s*([A-Za-z0-9 _\-/()]+?)\s*(?:[,;\n]|$)`)
	intValueRe     = regexp.MustCompile(`^-?\d+$`)
	floatValueRe   = regexp.MustCompile(`^-?\d+\.\d+$`)
)

func normalizeMessages(messages []ChatMessage) []ChatMessage {
	normalized := []ChatMessage{}
	for _, item := range messages {
		role := strings.ToLower(strings.TrimSpace(item.Role))
		content := strings.TrimSpace(item.Content)
		if (role != "user" && role != "assistant") || content == "" {
			continue
		}
		normalized = append(normalized, ChatMessage{Role: role, Content: content})
	}

	if len(normalized) > 20 {
		normalized = normalized[len(normalized)-20:]
	}
	return normalized
}

// collectKnownCustomers gathers every customer name a rule mentions:
// mapping keys and values plus every condition key.
func collectKnownCustomers(rulesMap map[string]interface{}) []string {
	seen := map[string]bool{}

	if mapping, ok := rulesMap["customerNameMapping"].(map[string]interface{}); ok {
		for crmName, erpName := range mapping {
			if name := strings.TrimSpace(crmName); name != "" {
				seen[name] = true
			}
			if text, ok := erpName.(string); ok {
				if name := strings.TrimSpace(text); name != "" {
					seen[name] = true
				}
			}
		}
	}

	for _, ruleType := range conditionalRuleTypes {
		ruleData, ok := rulesMap[ruleType].(map[string]interface{})
		if !ok {
			continue
		}
		conditions, ok := ruleData["conditions"].(map[string]interface{})
		if !ok {
			continue
		}
		for key := range conditions {
			if name := strings.TrimSpace(key); name != "" {
				seen[name] = true
			}
		}
	}

	customers := make([]string, 0, len(seen))
	for name := range seen {
		customers = append(customers, name)
	}
	sort.Strings(customers)
	return customers
}

func deterministicExplain(rulesMap map[string]interface{}, situation string) ExplainResponse {
	situationLower := strings.ToLower(situation)

	var matchedCustomer string
	for _, name := range collectKnownCustomers(rulesMap) {
		if strings.Contains(situationLower, strings.ToLower(name)) {
			matchedCustomer = name
			break
		}
	}

	applicable := []ApplicableRule{}
	resolvedCustomer := ""

	if matchedCustomer != "" {
		mapped := matchedCustomer
		if mapping, ok := rulesMap["customerNameMapping"].(map[string]interface{}); ok {
			if value, ok := mapping[matchedCustomer].(string); ok {
				mapped = value
			}
		}
		applicable = append(applicable, ApplicableRule{
			RuleType:      "customerNameMapping",
			MatchType:     "mapping",
			MatchedKey:    matchedCustomer,
			ResolvedValue: mapped,
			Reason:        "Customer mapping resolves CRM name to target ERP customer name.",
		})
		resolvedCustomer = mapped
	}

	for _, ruleType := range conditionalRuleTypes {
		ruleData, _ := rulesMap[ruleType].(map[string]interface{})

		entry := ApplicableRule{
			RuleType:      ruleType,
			MatchType:     "default",
			MatchedKey:    nil,
			ResolvedValue: ruleData["_default"],
			Reason:        "No customer-specific condition found; default applies.",
		}
		if resolvedCustomer != "" {
			if conditions, ok := ruleData["conditions"].(map[string]interface{}); ok {
				if value, ok := conditions[resolvedCustomer]; ok {
					entry.MatchType = "condition"
					entry.MatchedKey = resolvedCustomer
					entry.ResolvedValue = value
					entry.Reason = "Customer-specific condition matched."
				}
			}
		}
		applicable = append(applicable, entry)
	}

	summary := "No explicit customer detected in the situation; defaults were used."
	if matchedCustomer != "" {
		summary = fmt.Sprintf("Evaluated rules for customer '%s'.", matchedCustomer)
	}

	return ExplainResponse{
		Summary:         summary,
		ApplicableRules: applicable,
		UsedAI:          false,
	}
}

func extractRuleName(text string) string {
	for _, pattern := range ruleNamePatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			return strings.TrimSpace(match[1])
		}
	}
	return ""
}

func looksLikeColumnLabelRequest(text string) bool {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "snake case") && strings.Contains(lower, "proper case") {
		return true
	}
	return strings.Contains(text, "->") && strings.Contains(lower, "column")
}

// clauses splits free text into rule clauses. "but for"/"and for"
// joiners start a new clause so each condition parses on its own.
func clauses(text string) []string {
	rewritten := clauseJoinRe.ReplaceAllString(text, "\nfor")
	parts := strings.FieldsFunc(rewritten, func(r rune) bool {
		return r == ',' || r == '.' || r == ';' || r == '\n'
	})

	result := []string{}
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func coerceRuleValue(raw string) interface{} {
	value := strings.Trim(strings.TrimSpace(raw), `"'`)
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	if intValueRe.MatchString(value) {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	if floatValueRe.MatchString(value) {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return value
}

func deepCopyMap(source map[string]interface{}) map[string]interface{} {
	raw, err := json.Marshal(source)
	if err != nil {
		return map[string]interface{}{}
	}
	copied := map[string]interface{}{}
	if err := json.Unmarshal(raw, &copied); err != nil {
		return map[string]interface{}{}
	}
	return copied
}

func mergeMappingMaps(base, incoming map[string]interface{}) map[string]interface{} {
	for key, value := range incoming {
		incomingMap, incomingOk := value.(map[string]interface{})
		baseMap, baseOk := base[key].(map[string]interface{})
		if incomingOk && baseOk {
			base[key] = mergeMappingMaps(baseMap, incomingMap)
			continue
		}
		base[key] = value
	}
	return base
}

func snakeToTitleCase(value string) string {
	words := []string{}
	for _, part := range strings.Split(strings.TrimSpace(value), "_") {
		if part == "" {
			continue
		}
		words = append(words, strings.ToUpper(part[:1])+part[1:])
	}
	return strings.Join(words, " ")
}

func textMentionsERPSchema(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "erp columns") ||
		strings.Contains(lower, "payload") ||
		strings.Contains(lower, "line_items contains") ||
		strings.Contains(lower, "line items contains")
}

func extractExplicitColumnLabelPairs(text string) map[string]string {
	pairs := map[string]string{}
	for _, match := range columnPairRe.FindAllStringSubmatch(text, -1) {
		sourceKey := strings.TrimSpace(match[1])
		label := strings.TrimSpace(match[2])
		if sourceKey != "" && label != "" {
			pairs[sourceKey] = label
		}
	}
	return pairs
}

func buildColumnLabelMappingRule(text string) map[string]interface{} {
	explicitPairs := extractExplicitColumnLabelPairs(text)

	mapping := map[string]interface{}{}
	lineItemsMapping := map[string]interface{}{}

	if textMentionsERPSchema(text) {
		for _, field := range erpTopLevelFields {
			if field == "line_items" {
				continue
			}
			mapping[field] = snakeToTitleCase(field)
		}
		for _, subfield := range erpLineItemFields {
			lineItemsMapping[subfield] = snakeToTitleCase(subfield)
		}
	}

	for sourceKey, label := range explicitPairs {
		key := strings.TrimSpace(sourceKey)
		if key == "" || key == "line_items" {
			continue
		}
		if strings.HasPrefix(key, "line_items.") {
			if subfield := strings.TrimSpace(strings.TrimPrefix(key, "line_items.")); subfield != "" {
				lineItemsMapping[subfield] = label
			}
			continue
		}
		mapping[key] = label
	}

	if len(lineItemsMapping) > 0 {
		mapping["line_items"] = lineItemsMapping
	}
	return mapping
}

// buildRuleProposalFromText parses "create rule X default is Y, for Z
// make it W" shaped text into a full updated rule set. Returns false
// when the text names no rule or carries no default.
func buildRuleProposalFromText(text string, currentRules map[string]interface{}) (map[string]interface{}, string, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, "", false
	}

	ruleName := extractRuleName(text)
	if ruleName == "" {
		return nil, "", false
	}

	if looksLikeColumnLabelRequest(text) {
		columnMapping := buildColumnLabelMappingRule(text)
		if len(columnMapping) > 0 {
			updated := deepCopyMap(currentRules)
			if existing, ok := updated[ruleName].(map[string]interface{}); ok {
				updated[ruleName] = mergeMappingMaps(deepCopyMap(existing), columnMapping)
			} else {
				updated[ruleName] = columnMapping
			}
			return updated, ruleName, true
		}
	}

	var defaultValue interface{}
	haveDefault := false
	conditions := map[string]interface{}{}

	for _, clause := range clauses(text) {
		if !haveDefault {
			if match := defaultValueRe.FindStringSubmatch(clause); match != nil {
				defaultValue = coerceRuleValue(match[1])
				haveDefault = true
				continue
			}
		}
		if match := conditionRe.FindStringSubmatch(clause); match != nil {
			key := strings.TrimSpace(match[1])
			if key != "" {
				conditions[key] = coerceRuleValue(match[2])
			}
		}
	}
	if !haveDefault {
		return nil, "", false
	}

	updated := deepCopyMap(currentRules)
	mergedConditions := map[string]interface{}{}
	if existing, ok := updated[ruleName].(map[string]interface{}); ok {
		if existingConditions, ok := existing["conditions"].(map[string]interface{}); ok {
			for key, value := range existingConditions {
				mergedConditions[key] = value
			}
		}
	}
	for key, value := range conditions {
		mergedConditions[key] = value
	}

	updated[ruleName] = map[string]interface{}{
		"_default":   defaultValue,
		"conditions": mergedConditions,
	}
	return updated, ruleName, true
}
