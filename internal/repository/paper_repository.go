package repository

import (
	"context"
	"time"

	"github.com/lshigami/qams/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaperUpdate carries the editable paper fields; nil pointers are left untouched.
type PaperUpdate struct {
	Title        *string
	ExamType     *string
	Semester     *string
	AcademicYear *string
	FullMarks    *float64
	Duration     *int
}

type PaperRepository interface {
	WithTx(tx *gorm.DB) PaperRepository
	Create(ctx context.Context, paper *model.QuestionPaper) error
	FindByID(ctx context.Context, id uint) (*model.QuestionPaper, error)
	// FindByIDForUpdate row-locks the paper until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uint) (*model.QuestionPaper, error)
	FindAll(ctx context.Context, instructorID *uint, limit, offset int) ([]model.QuestionPaper, error)
	// Update applies upd and bumps the version. An empty PaperUpdate only bumps the version.
	Update(ctx context.Context, id uint, upd PaperUpdate) (*model.QuestionPaper, error)
	// SetStatus overwrites the status and bumps the version.
	SetStatus(ctx context.Context, id uint, status model.PaperStatus) (*model.QuestionPaper, error)
	Delete(ctx context.Context, id uint) error
}

type paperRepository struct {
	db *gorm.DB
}

func NewPaperRepository(db *gorm.DB) PaperRepository {
	return &paperRepository{db: db}
}

func (r *paperRepository) WithTx(tx *gorm.DB) PaperRepository {
	return &paperRepository{db: tx}
}

func (r *paperRepository) Create(ctx context.Context, paper *model.QuestionPaper) error {
	if paper.Status == "" {
		paper.Status = model.PaperStatusDraft
	}
	if paper.Version == 0 {
		paper.Version = 1
	}
	return r.db.WithContext(ctx).Create(paper).Error
}

func (r *paperRepository) FindByID(ctx context.Context, id uint) (*model.QuestionPaper, error) {
	var paper model.QuestionPaper
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Instructor").
		First(&paper, id).Error
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *paperRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.QuestionPaper, error) {
	var paper model.QuestionPaper
	query := r.db.WithContext(ctx)
	// SQLite has no row locks; its single writer already serializes the transaction.
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.First(&paper, id).Error
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *paperRepository) FindAll(ctx context.Context, instructorID *uint, limit, offset int) ([]model.QuestionPaper, error) {
	var papers []model.QuestionPaper
	query := r.db.WithContext(ctx).Preload("Course").Preload("Instructor")
	if instructorID != nil {
		query = query.Where("instructor_id = ?", *instructorID)
	}
	err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&papers).Error
	return papers, err
}

func (r *paperRepository) Update(ctx context.Context, id uint, upd PaperUpdate) (*model.QuestionPaper, error) {
	fields := map[string]interface{}{
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now(),
	}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.ExamType != nil {
		fields["exam_type"] = *upd.ExamType
	}
	if upd.Semester != nil {
		fields["semester"] = *upd.Semester
	}
	if upd.AcademicYear != nil {
		fields["academic_year"] = *upd.AcademicYear
	}
	if upd.FullMarks != nil {
		fields["full_marks"] = *upd.FullMarks
	}
	if upd.Duration != nil {
		fields["duration"] = *upd.Duration
	}
	return r.updateFields(ctx, id, fields)
}

func (r *paperRepository) SetStatus(ctx context.Context, id uint, status model.PaperStatus) (*model.QuestionPaper, error) {
	return r.updateFields(ctx, id, map[string]interface{}{
		"status":     status,
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now(),
	})
}

func (r *paperRepository) updateFields(ctx context.Context, id uint, fields map[string]interface{}) (*model.QuestionPaper, error) {
	res := r.db.WithContext(ctx).Model(&model.QuestionPaper{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var paper model.QuestionPaper
	if err := r.db.WithContext(ctx).First(&paper, id).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *paperRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.QuestionPaper{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
