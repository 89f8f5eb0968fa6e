package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	common_models "go-transformer/internal/common/models"
	"go-transformer/internal/features/audit"
	"go-transformer/internal/features/rules"
)

type AssistService interface {
	Update(ctx context.Context, instruction string, apply bool) (UpdateResponse, error)
	Explain(ctx context.Context, situation string) (ExplainResponse, error)
	Copilot(ctx context.Context, messages []ChatMessage, apply bool) (CopilotResponse, error)
}

type AssistServiceImpl struct {
	Client       ChatClient
	Rules        rules.RulesService
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewAssistService(client ChatClient, rulesService rules.RulesService, auditService audit.AuditService, logger *zap.Logger) AssistService {
	return &AssistServiceImpl{
		Client:       client,
		Rules:        rulesService,
		AuditService: auditService,
		Logger:       logger,
	}
}

// validateRulesMap round-trips an AI-proposed rule map through the
// rule parser so a malformed proposal is rejected before any write.
func validateRulesMap(payload map[string]interface{}) (rules.TransformRules, map[string]interface{}, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return rules.TransformRules{}, nil, err
	}
	parsed, err := rules.ParseRules(raw)
	if err != nil {
		return rules.TransformRules{}, nil, err
	}
	asMap, err := parsed.ToMap()
	if err != nil {
		return rules.TransformRules{}, nil, err
	}
	return parsed, asMap, nil
}

func (s *AssistServiceImpl) Update(ctx context.Context, instruction string, apply bool) (UpdateResponse, error) {
	text := strings.TrimSpace(instruction)
	if text == "" {
		return UpdateResponse{}, newValidationError("Instruction is required")
	}

	current, err := s.Rules.GetMap(ctx)
	if err != nil {
		return UpdateResponse{}, err
	}

	aiResponse, err := s.Client.CompleteJSON(ctx, updateSystemPrompt, map[string]interface{}{
		"instruction":   text,
		"current_rules": current,
	})
	if err != nil {
		return UpdateResponse{}, err
	}

	summary := stringField(aiResponse, "summary")
	if summary == "" {
		summary = "Rules updated by AI"
	}

	payload, ok := aiResponse["updated_rules"].(map[string]interface{})
	if !ok {
		return UpdateResponse{}, newValidationError("AI response did not include a valid `updated_rules` object")
	}

	validated, updatedMap, err := validateRulesMap(payload)
	if err != nil {
		return UpdateResponse{}, err
	}

	response := UpdateResponse{
		Applied:      false,
		Summary:      summary,
		Changes:      rules.Diff(current, updatedMap),
		UpdatedRules: updatedMap,
	}

	if apply {
		saved, err := s.Rules.SaveRules(ctx, validated)
		if err != nil {
			return UpdateResponse{}, err
		}
		savedMap, err := saved.ToMap()
		if err != nil {
			return UpdateResponse{}, err
		}
		response.Applied = true
		response.UpdatedRules = savedMap
		response.Changes = rules.Diff(current, savedMap)

		_ = s.AuditService.LogChange(ctx, common_models.AuditActionAssist, "rules/ai/update", map[string]common_models.Change{
			"instruction": {Old: nil, New: text},
			"changes":     {Old: nil, New: len(response.Changes)},
		})
	}

	return response, nil
}

func (s *AssistServiceImpl) Explain(ctx context.Context, situation string) (ExplainResponse, error) {
	text := strings.TrimSpace(situation)
	if text == "" {
		return ExplainResponse{}, newValidationError("Situation is required")
	}

	current, err := s.Rules.GetMap(ctx)
	if err != nil {
		return ExplainResponse{}, err
	}

	aiResponse, err := s.Client.CompleteJSON(ctx, explainSystemPrompt, map[string]interface{}{
		"situation": text,
		"rules":     current,
	})
	if err != nil {
		if err != ErrNoAIConfigured {
			s.Logger.Warn("AI explain failed, using deterministic fallback",
				zap.String("feature", "assist"),
				zap.Error(err))
		}
		return deterministicExplain(current, text), nil
	}

	applicable, err := parseApplicableRules(aiResponse["applicable_rules"])
	if err != nil {
		return deterministicExplain(current, text), nil
	}

	summary := stringField(aiResponse, "summary")
	if summary == "" {
		summary = "Rules explanation generated"
	}

	return ExplainResponse{
		Summary:         summary,
		ApplicableRules: applicable,
		UsedAI:          true,
	}, nil
}

func (s *AssistServiceImpl) Copilot(ctx context.Context, messages []ChatMessage, apply bool) (CopilotResponse, error) {
	normalized := normalizeMessages(messages)
	if len(normalized) == 0 {
		return CopilotResponse{}, newValidationError("At least one user message is required")
	}

	current, err := s.Rules.GetMap(ctx)
	if err != nil {
		return CopilotResponse{}, err
	}

	aiResponse, err := s.Client.CompleteJSON(ctx, copilotSystemPrompt, map[string]interface{}{
		"messages": normalized,
		"rules":    current,
	})
	if err != nil {
		if err != ErrNoAIConfigured {
			s.Logger.Warn("AI copilot failed, using deterministic fallback",
				zap.String("feature", "assist"),
				zap.Error(err))
		}
		return s.deterministicCopilot(ctx, normalized, current, apply)
	}

	response, err := s.buildCopilotResponse(ctx, aiResponse, current, apply, true)
	if err != nil {
		return s.deterministicCopilot(ctx, normalized, current, apply)
	}
	return response, nil
}

func (s *AssistServiceImpl) buildCopilotResponse(
	ctx context.Context,
	aiResponse map[string]interface{},
	current map[string]interface{},
	apply bool,
	usedAI bool,
) (CopilotResponse, error) {
	mode := strings.ToLower(stringField(aiResponse, "mode"))
	if mode != "answer" && mode != "clarify" && mode != "proposal" {
		mode = "answer"
	}

	reply := stringField(aiResponse, "reply")
	if reply == "" {
		reply = "I reviewed your request."
	}

	questions := []string{}
	if raw, ok := aiResponse["questions"].([]interface{}); ok {
		for _, item := range raw {
			if text := strings.TrimSpace(fmt.Sprint(item)); text != "" {
				questions = append(questions, text)
			}
		}
	}

	response := CopilotResponse{
		Mode:      mode,
		Reply:     reply,
		Questions: questions,
		Changes:   []rules.RuleChange{},
		UsedAI:    usedAI,
	}

	payload, hasProposal := aiResponse["updated_rules"].(map[string]interface{})
	if hasProposal {
		validated, updatedMap, err := validateRulesMap(payload)
		if err != nil {
			return CopilotResponse{}, err
		}
		response.UpdatedRules = updatedMap
		response.Changes = rules.Diff(current, updatedMap)
		response.Mode = "proposal"

		if apply {
			saved, err := s.Rules.SaveRules(ctx, validated)
			if err != nil {
				return CopilotResponse{}, err
			}
			savedMap, err := saved.ToMap()
			if err != nil {
				return CopilotResponse{}, err
			}
			response.UpdatedRules = savedMap
			response.Changes = rules.Diff(current, savedMap)
			response.Applied = true
			lower := strings.ToLower(response.Reply)
			if !strings.Contains(lower, "applied") && !strings.Contains(lower, "saved") {
				response.Reply += "\n\nChanges have been applied and saved."
			}

			_ = s.AuditService.LogChange(ctx, common_models.AuditActionAssist, "rules/ai/copilot", map[string]common_models.Change{
				"changes": {Old: nil, New: len(response.Changes)},
			})
		} else if len(response.Changes) > 0 {
			if !strings.Contains(strings.ToLower(response.Reply), "apply") {
				response.Reply += "\n\nA proposal is ready. Click 'Apply Copilot Proposal' to save it."
			}
		} else if !strings.Contains(strings.ToLower(response.Reply), "no changes") {
			response.Reply += "\n\nNo actual rule changes were detected."
		}
	} else if response.Mode == "answer" {
		lower := strings.ToLower(response.Reply)
		for _, word := range []string{"created", "updated", "added", "saved"} {
			if strings.Contains(lower, word) {
				response.Reply += "\n\nNo valid rule proposal was generated, so nothing was changed. " +
					"Provide more details or ask for a proposal explicitly."
				break
			}
		}
	}

	return response, nil
}

func (s *AssistServiceImpl) deterministicCopilot(
	ctx context.Context,
	messages []ChatMessage,
	current map[string]interface{},
	apply bool,
) (CopilotResponse, error) {
	userMessages := []string{}
	for _, item := range messages {
		if item.Role == "user" {
			userMessages = append(userMessages, item.Content)
		}
	}
	lastUser := ""
	if len(userMessages) > 0 {
		lastUser = userMessages[len(userMessages)-1]
	}
	combined := strings.Join(userMessages, "\n")
	text := strings.ToLower(lastUser)

	if proposal, ruleName, ok := buildRuleProposalFromText(combined, current); ok {
		validated, updatedMap, err := validateRulesMap(proposal)
		if err != nil {
			return CopilotResponse{}, err
		}

		response := CopilotResponse{
			Mode: "proposal",
			Reply: fmt.Sprintf("I prepared a proposal to create or update `%s`. "+
				"Review the changes and click 'Apply Copilot Proposal' to save.", ruleName),
			Questions:    []string{},
			Changes:      rules.Diff(current, updatedMap),
			UpdatedRules: updatedMap,
		}
		if apply {
			saved, err := s.Rules.SaveRules(ctx, validated)
			if err != nil {
				return CopilotResponse{}, err
			}
			savedMap, err := saved.ToMap()
			if err != nil {
				return CopilotResponse{}, err
			}
			response.UpdatedRules = savedMap
			response.Changes = rules.Diff(current, savedMap)
			response.Applied = true
			response.Reply = fmt.Sprintf("Changes for `%s` have been applied and saved.", ruleName)
		}
		return response, nil
	}

	ruleIntent := false
	for _, keyword := range []string{"rule", "mapping", "default", "payment terms", "tax", "delivery"} {
		if strings.Contains(text, keyword) {
			ruleIntent = true
			break
		}
	}

	if ruleIntent {
		detected := extractRuleName(combined)
		response := CopilotResponse{Mode: "clarify", Changes: []rules.RuleChange{}}

		switch {
		case detected != "" && looksLikeColumnLabelRequest(combined):
			response.Reply = fmt.Sprintf("I detected rule name `%s` and this looks like a column-label mapping request. "+
				"I can create it with top-level fields plus nested `line_items` labels.", detected)
			response.Questions = []string{
				fmt.Sprintf("Should `%s` be a plain mapping object like `invoice_date: Invoice Date`?", detected),
				"Should `line_items` be nested like `line_items: { product_code: Product Code }`?",
				"For unknown/new columns, should label fallback be `Title Case` from snake_case?",
			}
		case detected != "":
			response.Reply = fmt.Sprintf("I detected rule name `%s`. "+
				"I can create/update it once you provide default and specific mappings.", detected)
			response.Questions = []string{
				fmt.Sprintf("What should be the `_default` value for `%s`?", detected),
				fmt.Sprintf("Which specific keys should map to non-default values in `%s`?", detected),
				"Confirm if I should prepare a proposal now.",
			}
		default:
			response.Reply = "I can guide your rule mapping step by step. " +
				"For mapping-style rules, define the `_default` first, then specific `conditions`."
			response.Questions = []string{
				"What rule name do you want to create or update?",
				"What should be the `_default` value for that rule?",
				"Which specific keys should map to non-default values, and what are those values?",
			}
		}
		return response, nil
	}

	return CopilotResponse{
		Mode: "clarify",
		Reply: "I can help with rule mapping and updates. " +
			"Describe a rule change in natural language and I will guide you.",
		Questions: []string{
			"If updating rules, which rule type and what default value do you want?",
		},
		Changes: []rules.RuleChange{},
	}, nil
}

func parseApplicableRules(raw interface{}) ([]ApplicableRule, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("AI response did not include a valid `applicable_rules` list")
	}

	parsed := []ApplicableRule{}
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		parsed = append(parsed, ApplicableRule{
			RuleType:      stringField(entry, "rule_type"),
			MatchType:     stringField(entry, "match_type"),
			MatchedKey:    entry["matched_key"],
			ResolvedValue: entry["resolved_value"],
			Reason:        stringField(entry, "reason"),
		})
	}
	return parsed, nil
}

func stringField(payload map[string]interface{}, key string) string {
	if value, ok := payload[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
