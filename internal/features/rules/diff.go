package rules

import (
	"reflect"
	"sort"
)

// RuleChange is the unit of auditability for a rule mutation: the exact
// path touched plus the literal prior and new values.
type RuleChange struct {
	Path   string      `json:"path" bson:"path"`
	Before interface{} `json:"before" bson:"before"`
	After  interface{} `json:"after" bson:"after"`
}

// Diff walks two JSON-shaped values and emits one RuleChange per leaf
// that differs, with dotted paths and keys visited in sorted order.
func Diff(before, after interface{}) []RuleChange {
	return diffValues(before, after, "")
}

func diffValues(before, after interface{}, path string) []RuleChange {
	beforeMap, beforeOk := before.(map[string]interface{})
	afterMap, afterOk := after.(map[string]interface{})

	if beforeOk && afterOk {
		changes := []RuleChange{}
		keys := map[string]bool{}
		for key := range beforeMap {
			keys[key] = true
		}
		for key := range afterMap {
			keys[key] = true
		}

		sorted := make([]string, 0, len(keys))
		for key := range keys {
			sorted = append(sorted, key)
		}
		sort.Strings(sorted)

		for _, key := range sorted {
			next := key
			if path != "" {
				next = path + "." + key
			}

			beforeVal, inBefore := beforeMap[key]
			afterVal, inAfter := afterMap[key]
			switch {
			case !inBefore:
				changes = append(changes, RuleChange{Path: next, Before: nil, After: afterVal})
			case !inAfter:
				changes = append(changes, RuleChange{Path: next, Before: beforeVal, After: nil})
			default:
				changes = append(changes, diffValues(beforeVal, afterVal, next)...)
			}
		}
		return changes
	}

	if !reflect.DeepEqual(before, after) {
		if path == "" {
			path = "$"
		}
		return []RuleChange{{Path: path, Before: before, After: after}}
	}

	return nil
}
