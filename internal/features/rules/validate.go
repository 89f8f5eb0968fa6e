package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type jsonFrame struct {
	isObject  bool
	seen      map[string]bool
	expectKey bool
}

// CheckDuplicateKeys scans raw JSON and fails on any object carrying the
// same key twice. encoding/json silently keeps the last duplicate, which
// would let a rule edit drop a condition row without anyone noticing, so
// the check runs on the wire bytes before parsing.
func CheckDuplicateKeys(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var stack []jsonFrame
	var path []string

	// A completed value inside an object flips the frame back to key
	// position and drops the finished key from the path.
	valueDone := func() {
		if len(stack) > 0 && stack[len(stack)-1].isObject {
			stack[len(stack)-1].expectKey = true
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			// io.EOF terminates a well-formed document
			if len(stack) == 0 {
				return nil
			}
			return newValidationError("malformed rules JSON: %v", err)
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, jsonFrame{isObject: true, seen: map[string]bool{}, expectKey: true})
			case '[':
				stack = append(stack, jsonFrame{})
			case '}', ']':
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					return nil
				}
				valueDone()
			}
		case string:
			if len(stack) == 0 {
				return nil
			}
			top := &stack[len(stack)-1]
			if top.isObject && top.expectKey {
				if top.seen[v] {
					at := strings.Join(path, ".")
					if at == "" {
						at = "$"
					}
					return newValidationError("duplicate key %q at %s", v, at)
				}
				top.seen[v] = true
				top.expectKey = false
				path = append(path, v)
				continue
			}
			valueDone()
		default:
			valueDone()
		}
	}
}

// ParseRules validates and decodes a rules payload. Duplicate condition
// keys must be checked by the caller on the raw bytes first. Every
// conditional rule block is required; a set missing one could never be
// re-saved or resolved against, so it is rejected before any write.
// An explicit JSON null counts as absent.
func ParseRules(raw []byte) (TransformRules, error) {
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return TransformRules{}, newValidationError("invalid rules JSON: %v", err)
	}
	payload, ok := decoded.(map[string]interface{})
	if !ok {
		return TransformRules{}, newValidationError("rules payload must be a JSON object")
	}

	for _, ruleType := range ConditionalRuleTypes {
		value, present := payload[ruleType]
		if !present || value == nil {
			return TransformRules{}, newValidationError("rule %q is required", ruleType)
		}
		if err := validateConditionalShape(ruleType, value); err != nil {
			return TransformRules{}, err
		}
	}

	coerced, err := coerceIntRule(payload["deliveryDays"])
	if err != nil {
		return TransformRules{}, err
	}
	payload["deliveryDays"] = coerced
	raw, _ = json.Marshal(payload)

	var parsed TransformRules
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return TransformRules{}, newValidationError("invalid rules payload: %v", err)
	}

	// The mapping and reference blocks carry defaults when omitted.
	if parsed.CustomerNameMapping == nil {
		parsed.CustomerNameMapping = MappingRule{}
	}
	if parsed.CustomerReference == nil {
		parsed.CustomerReference = DefaultCustomerReferenceRule()
	}
	if parsed.PaymentReference == nil {
		parsed.PaymentReference = DefaultPaymentReferenceRule()
	}
	return parsed, nil
}

func validateConditionalShape(ruleType string, value interface{}) error {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return newValidationError("rule %q must be an object with _default and conditions", ruleType)
	}
	if _, ok := obj["_default"]; !ok {
		return newValidationError("rule %q is missing _default", ruleType)
	}
	if conditions, present := obj["conditions"]; present {
		if _, ok := conditions.(map[string]interface{}); !ok {
			return newValidationError("rule %q conditions must be an object", ruleType)
		}
	}
	return nil
}

// coerceIntRule converts condition values of a numeric rule to integers.
// Rule identity fixes the value type at the schema level, so "21" and
// 21.0 both become 21 here; anything else is a ValidationError.
func coerceIntRule(value interface{}) (map[string]interface{}, error) {
	obj, _ := value.(map[string]interface{})

	coerced := map[string]interface{}{}
	def, err := toInt(obj["_default"])
	if err != nil {
		return nil, newValidationError("deliveryDays _default: %v", err)
	}
	coerced["_default"] = def

	conditions := map[string]interface{}{}
	if raw, ok := obj["conditions"].(map[string]interface{}); ok {
		for key, conditionValue := range raw {
			n, err := toInt(conditionValue)
			if err != nil {
				return nil, newValidationError("deliveryDays condition %q: %v", key, err)
			}
			conditions[key] = n
		}
	}
	coerced["conditions"] = conditions
	return coerced, nil
}

func toInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not a whole number", v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%q is not a valid integer", v)
		}
		return n, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%v is not a whole number", v)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%v is not a number", value)
	}
}
