package service

import (
	"context"
	"fmt"

	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

type AuditLogService interface {
	// Append writes one entry. Pass the open transaction so the entry commits
	// or rolls back with the change it records; a nil tx writes directly.
	Append(ctx context.Context, tx *gorm.DB, actorID uint, action string, details map[string]interface{}) error
	List(ctx context.Context, actor Actor, limit int) ([]dto.AuditLogResponse, error)
	ListByUser(ctx context.Context, actor Actor, userID uint, limit int) ([]dto.AuditLogResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) (*dto.AuditLogResponse, error)
}

type auditLogService struct {
	repo repository.AuditLogRepository
	gate AccessGate
}

func NewAuditLogService(repo repository.AuditLogRepository, gate AccessGate) AuditLogService {
	return &auditLogService{repo: repo, gate: gate}
}

func (s *auditLogService) Append(ctx context.Context, tx *gorm.DB, actorID uint, action string, details map[string]interface{}) error {
	repo := s.repo
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	entry := model.AuditLog{
		UserID:  actorID,
		Action:  action,
		Details: datatypes.JSONMap(details),
	}
	if err := repo.Create(ctx, &entry); err != nil {
		return fmt.Errorf("appending audit log %s: %w", action, err)
	}
	return nil
}

func (s *auditLogService) List(ctx context.Context, actor Actor, limit int) ([]dto.AuditLogResponse, error) {
	if err := s.gate.Authorize(actor, ActionAuditView, Resource{}); err != nil {
		return nil, err
	}
	entries, err := s.repo.FindAll(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return mapSlice(entries, toAuditLogResponse), nil
}

func (s *auditLogService) ListByUser(ctx context.Context, actor Actor, userID uint, limit int) ([]dto.AuditLogResponse, error) {
	if err := s.gate.Authorize(actor, ActionAuditView, Resource{}); err != nil {
		return nil, err
	}
	entries, err := s.repo.FindByUser(ctx, userID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return mapSlice(entries, toAuditLogResponse), nil
}

func (s *auditLogService) Delete(ctx context.Context, actor Actor, id uint) (*dto.AuditLogResponse, error) {
	if err := s.gate.Authorize(actor, ActionAuditDelete, Resource{}); err != nil {
		return nil, err
	}
	entry, err := s.repo.Delete(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("log", id)
		}
		return nil, err
	}
	resp := toAuditLogResponse(entry)
	return &resp, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultLogLimit
	case limit > maxLogLimit:
		return maxLogLimit
	}
	return limit
}
