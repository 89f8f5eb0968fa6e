package rules

// Resolve looks up key against the rule's conditions. The match is exact
// and case-sensitive: rule authors (including the AI) key conditions by
// the literal values users supply, so no folding or fuzzy matching.
func (r *ConditionalStringRule) Resolve(key string) string {
	if value, ok := r.Conditions[key]; ok {
		return value
	}
	return r.Default
}

func (r *ConditionalIntRule) Resolve(key string) int {
	if value, ok := r.Conditions[key]; ok {
		return value
	}
	return r.Default
}

// Map returns the mapped value for input, or input unchanged when no
// mapping exists. An explicit empty-string mapping is honored, which is
// what distinguishes "no rule" from "mapped to empty".
func (m MappingRule) Map(input string) string {
	if mapped, ok := m[input]; ok {
		return mapped
	}
	return input
}
