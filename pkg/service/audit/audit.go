// Package audit exposes the read side of the audit trail.
package audit

import (
	"context"

	"github.com/mhgaber/branchbank/pkg/domain"
	"github.com/mhgaber/branchbank/pkg/repository"
)

// Service lists audit entries for the back-office screens.
type Service struct {
	uow repository.UnitOfWork
}

// New creates an audit service.
func New(uow repository.UnitOfWork) *Service {
	return &Service{uow: uow}
}

// List returns the audit trail, newest first.
func (s *Service) List(ctx context.Context) ([]*domain.AuditLog, error) {
	var entries []*domain.AuditLog
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		audits, err := uow.AuditLogRepository()
		if err != nil {
			return err
		}
		entries, err = audits.List(ctx)
		return err
	})
	return entries, err
}
