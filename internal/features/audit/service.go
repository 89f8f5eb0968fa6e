package audit

import (
	"context"
	"time"

	common_models "go-transformer/internal/common/models"
)

type AuditService interface {
	LogChange(ctx context.Context, action common_models.AuditAction, target string, changes map[string]common_models.Change) error
	Recent(ctx context.Context, limit int64) ([]common_models.AuditLog, error)
}

type AuditServiceImpl struct {
	Repo AuditRepository
}

func NewAuditService(repo AuditRepository) AuditService {
	return &AuditServiceImpl{Repo: repo}
}

func (s *AuditServiceImpl) LogChange(ctx context.Context, action common_models.AuditAction, target string, changes map[string]common_models.Change) error {
	entry := &common_models.AuditLog{
		Action:    action,
		Target:    target,
		Changes:   changes,
		Timestamp: time.Now().UTC(),
	}
	return s.Repo.Insert(ctx, entry)
}

func (s *AuditServiceImpl) Recent(ctx context.Context, limit int64) ([]common_models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.Repo.FindRecent(ctx, limit)
}
