package audit

import (
	"context"
	"testing"

	common_models "go-transformer/internal/common/models"
)

type memoryAuditRepo struct {
	entries   []common_models.AuditLog
	lastLimit int64
}

func (r *memoryAuditRepo) Insert(ctx context.Context, entry *common_models.AuditLog) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memoryAuditRepo) FindRecent(ctx context.Context, limit int64) ([]common_models.AuditLog, error) {
	r.lastLimit = limit
	return r.entries, nil
}

func TestLogChangeStampsTimestamp(t *testing.T) {
	repo := &memoryAuditRepo{}
	service := NewAuditService(repo)

	err := service.LogChange(context.Background(), common_models.AuditActionRules, "transform_rules", map[string]common_models.Change{
		"salesTaxRate._default": {Old: "20%", New: "25%"},
	})
	if err != nil {
		t.Fatalf("LogChange() error = %v", err)
	}

	if len(repo.entries) != 1 {
		t.Fatalf("repo holds %d entries, want 1", len(repo.entries))
	}
	entry := repo.entries[0]
	if entry.Action != common_models.AuditActionRules {
		t.Errorf("action = %q, want %q", entry.Action, common_models.AuditActionRules)
	}
	if entry.Target != "transform_rules" {
		t.Errorf("target = %q, want transform_rules", entry.Target)
	}
	if entry.Timestamp.IsZero() {
		t.Error("timestamp was not stamped")
	}
}

func TestRecentClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int64
		want  int64
	}{
		{"zero falls back", 0, 50},
		{"negative falls back", -5, 50},
		{"over cap falls back", 500, 50},
		{"in range passes through", 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryAuditRepo{}
			service := NewAuditService(repo)

			if _, err := service.Recent(context.Background(), tt.limit); err != nil {
				t.Fatalf("Recent() error = %v", err)
			}
			if repo.lastLimit != tt.want {
				t.Errorf("repo limit = %d, want %d", repo.lastLimit, tt.want)
			}
		})
	}
}
