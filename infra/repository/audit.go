package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mhgaber/branchbank/pkg/domain"
	repo "github.com/mhgaber/branchbank/pkg/repository"
)

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates the audit trail store over the given session.
func NewAuditLogRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	m := AuditLog{
		EntityName:  entry.EntityName,
		EntityID:    entry.EntityID,
		Action:      entry.Action,
		PerformedBy: entry.PerformedBy,
		Timestamp:   entry.Timestamp,
		Details:     entry.Details,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	entry.ID = m.ID
	return nil
}

func (r *auditLogRepository) List(ctx context.Context) ([]*domain.AuditLog, error) {
	var models []AuditLog
	err := r.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.AuditLog, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out, nil
}
