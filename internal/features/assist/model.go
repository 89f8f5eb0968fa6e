package assist

import "go-transformer/internal/features/rules"

// UpdateResponse answers an instruction-based rule update. With
// apply=false it is a proposal only: the rule store is untouched.
type UpdateResponse struct {
	Applied      bool                   `json:"applied"`
	Summary      string                 `json:"summary"`
	Changes      []rules.RuleChange     `json:"changes"`
	UpdatedRules map[string]interface{} `json:"updated_rules"`
}

// ApplicableRule is one rule's relevance to a described situation.
type ApplicableRule struct {
	RuleType      string      `json:"rule_type"`
	MatchType     string      `json:"match_type"`
	MatchedKey    interface{} `json:"matched_key"`
	ResolvedValue interface{} `json:"resolved_value"`
	Reason        string      `json:"reason"`
}

type ExplainResponse struct {
	Summary         string           `json:"summary"`
	ApplicableRules []ApplicableRule `json:"applicable_rules"`
	UsedAI          bool             `json:"used_ai"`
}

// CopilotResponse is one conversational turn. StatePersisted is always
// false: the server keeps no conversation memory, only the rule store
// write when Applied is true.
type CopilotResponse struct {
	Mode           string                 `json:"mode"`
	Reply          string                 `json:"reply"`
	Questions      []string               `json:"questions"`
	Changes        []rules.RuleChange     `json:"changes"`
	UpdatedRules   map[string]interface{} `json:"updated_rules"`
	Applied        bool                   `json:"applied"`
	UsedAI         bool                   `json:"used_ai"`
	StatePersisted bool                   `json:"state_persisted"`
}
