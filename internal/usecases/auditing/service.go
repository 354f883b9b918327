package auditing

import (
	"context"

	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/infrastructure/repository"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/log"
)

type Auditor interface {
	ListActivities(ctx context.Context, filter domain.ActivityFilter) ([]*domain.Activity, error)
	// Record grava uma atividade fora de transação, usada por rotinas em segundo plano
	Record(ctx context.Context, activity *domain.Activity) error
}

type Service struct {
	activities repository.ActivityRepository
	db         postgres.Queryer
}

func NewService(activities repository.ActivityRepository, db postgres.Queryer) Auditor {
	return &Service{
		activities: activities,
		db:         db,
	}
}

func (s *Service) ListActivities(ctx context.Context, filter domain.ActivityFilter) ([]*domain.Activity, error) {
	if !filter.Context.IsValidFilter() {
		return nil, NewAuditingError(ErrInvalidContext, apiErrors.ErrInvalidRequest, map[string]any{"context": filter.Context})
	}

	activities, err := s.activities.List(ctx, filter)
	if err != nil {
		return nil, NewAuditingError(err, apiErrors.ErrDatabaseOperation, nil)
	}
	return activities, nil
}

func (s *Service) Record(ctx context.Context, activity *domain.Activity) error {
	if !activity.Context.IsChannel() {
		return NewAuditingError(ErrInvalidContext, apiErrors.ErrInvalidRequest, map[string]any{"context": activity.Context})
	}

	if err := s.activities.Create(ctx, s.db, activity); err != nil {
		log.ForContext(ctx).WithError(err).WithField("type", activity.Type).Error("Falha ao registrar atividade")
		return NewAuditingError(err, apiErrors.ErrDatabaseOperation, nil)
	}
	return nil
}
