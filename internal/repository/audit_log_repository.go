package repository

import (
	"context"

	"github.com/lshigami/qams/internal/model"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	WithTx(tx *gorm.DB) AuditLogRepository
	Create(ctx context.Context, entry *model.AuditLog) error
	FindAll(ctx context.Context, limit int) ([]model.AuditLog, error)
	FindByUser(ctx context.Context, userID uint, limit int) ([]model.AuditLog, error)
	Delete(ctx context.Context, id uint) (*model.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) WithTx(tx *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: tx}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepository) FindAll(ctx context.Context, limit int) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *auditLogRepository) FindByUser(ctx context.Context, userID uint, limit int) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *auditLogRepository) Delete(ctx context.Context, id uint) (*model.AuditLog, error) {
	var entry model.AuditLog
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
