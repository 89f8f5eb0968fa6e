package rules

import (
	"context"
	"encoding/json"
	"time"

	common_models "go-transformer/internal/common/models"
	"go-transformer/internal/features/audit"
)

// Notifier pushes change events to connected UIs so an open rules page
// refreshes after any mutation path, manual or AI-applied.
type Notifier interface {
	NotifyRulesChanged(changes []RuleChange)
}

type RulesService interface {
	Get(ctx context.Context) (TransformRules, error)
	GetMap(ctx context.Context) (map[string]interface{}, error)
	Save(ctx context.Context, payload []byte) (TransformRules, error)
	// SaveRules is the validated write path for an already-parsed set,
	// used by the AI mutation flow.
	SaveRules(ctx context.Context, rules TransformRules) (TransformRules, error)
	GetRuleType(ctx context.Context, ruleType string) (interface{}, error)
	UpdateRuleType(ctx context.Context, ruleType string, payload []byte) (TransformRules, error)
}

type RulesServiceImpl struct {
	Repo         RulesRepository
	AuditService audit.AuditService
	Notifier     Notifier
}

func NewRulesService(repo RulesRepository, auditService audit.AuditService, notifier Notifier) RulesService {
	return &RulesServiceImpl{
		Repo:         repo,
		AuditService: auditService,
		Notifier:     notifier,
	}
}

func (s *RulesServiceImpl) Get(ctx context.Context) (TransformRules, error) {
	return s.Repo.Get(ctx)
}

func (s *RulesServiceImpl) GetMap(ctx context.Context) (map[string]interface{}, error) {
	rules, err := s.Repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return rules.ToMap()
}

func (s *RulesServiceImpl) Save(ctx context.Context, payload []byte) (TransformRules, error) {
	if err := CheckDuplicateKeys(payload); err != nil {
		return TransformRules{}, err
	}

	parsed, err := ParseRules(payload)
	if err != nil {
		return TransformRules{}, err
	}

	return s.SaveRules(ctx, parsed)
}

func (s *RulesServiceImpl) SaveRules(ctx context.Context, rules TransformRules) (TransformRules, error) {
	before, err := s.GetMap(ctx)
	if err != nil {
		return TransformRules{}, err
	}

	rules.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	if rules.Version == "" {
		rules.Version = "1.0.0"
	}

	if err := s.Repo.Replace(ctx, rules); err != nil {
		return TransformRules{}, err
	}

	after, mapErr := rules.ToMap()
	if mapErr == nil {
		changes := Diff(before, after)
		if len(changes) > 0 {
			s.logChanges(ctx, changes)
			if s.Notifier != nil {
				s.Notifier.NotifyRulesChanged(changes)
			}
		}
	}

	return rules, nil
}

func (s *RulesServiceImpl) GetRuleType(ctx context.Context, ruleType string) (interface{}, error) {
	all, err := s.GetMap(ctx)
	if err != nil {
		return nil, err
	}

	data, ok := all[ruleType]
	if !ok {
		return nil, &RuleNotFoundError{RuleType: ruleType}
	}
	return data, nil
}

func (s *RulesServiceImpl) UpdateRuleType(ctx context.Context, ruleType string, payload []byte) (TransformRules, error) {
	if err := CheckDuplicateKeys(payload); err != nil {
		return TransformRules{}, err
	}

	all, err := s.GetMap(ctx)
	if err != nil {
		return TransformRules{}, err
	}
	if _, ok := all[ruleType]; !ok {
		return TransformRules{}, &RuleNotFoundError{RuleType: ruleType}
	}

	var value interface{}
	if err := json.Unmarshal(payload, &value); err != nil {
		return TransformRules{}, newValidationError("invalid rule payload: %v", err)
	}
	all[ruleType] = value

	merged, err := json.Marshal(all)
	if err != nil {
		return TransformRules{}, err
	}

	parsed, err := ParseRules(merged)
	if err != nil {
		return TransformRules{}, err
	}

	return s.SaveRules(ctx, parsed)
}

func (s *RulesServiceImpl) logChanges(ctx context.Context, changes []RuleChange) {
	entries := map[string]common_models.Change{}
	for _, change := range changes {
		entries[change.Path] = common_models.Change{Old: change.Before, New: change.After}
	}
	_ = s.AuditService.LogChange(ctx, common_models.AuditActionRules, "transform_rules", entries)
}
