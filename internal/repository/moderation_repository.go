package repository

import (
	"context"
	"time"

	"github.com/lshigami/qams/internal/model"
	"gorm.io/gorm"
)

// ModerationRepository stores both moderation ledgers: paper-level claims and
// question-level claims.
type ModerationRepository interface {
	WithTx(tx *gorm.DB) ModerationRepository

	CreatePaperModeration(ctx context.Context, rec *model.PaperModeration) error
	FindPaperModerationByID(ctx context.Context, id uint) (*model.PaperModeration, error)
	PaperModerationExists(ctx context.Context, paperID, moderatorID uint) (bool, error)
	UpdatePaperModeration(ctx context.Context, id uint, status model.ModerationStatus, comments string, reviewedAt time.Time) (*model.PaperModeration, error)
	ListPaperModerationsByPaper(ctx context.Context, paperID uint) ([]model.PaperModeration, error)
	ListPaperModerationsByModerator(ctx context.Context, moderatorID uint) ([]model.PaperModeration, error)

	CreateQuestionModeration(ctx context.Context, rec *model.QuestionModeration) error
	FindQuestionModerationByID(ctx context.Context, id uint) (*model.QuestionModeration, error)
	QuestionModerationExists(ctx context.Context, questionID, moderatorID uint) (bool, error)
	UpdateQuestionModeration(ctx context.Context, id uint, status model.ModerationStatus, comments string, reviewedAt time.Time) (*model.QuestionModeration, error)
	ListQuestionModerationsByPaper(ctx context.Context, paperID uint) ([]model.QuestionModeration, error)
	ListQuestionModerationsByQuestion(ctx context.Context, questionID uint) ([]model.QuestionModeration, error)
	ListQuestionModerationsByModerator(ctx context.Context, moderatorID uint) ([]model.QuestionModeration, error)

	// StatusesByPaper returns the status of every paper-level and
	// question-level record attached to the paper.
	StatusesByPaper(ctx context.Context, paperID uint) ([]model.ModerationStatus, error)
}

type moderationRepository struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) WithTx(tx *gorm.DB) ModerationRepository {
	return &moderationRepository{db: tx}
}

// newestFirst is the listing order shared by every ledger query.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("reviewed_at DESC").Order("id DESC")
}

func (r *moderationRepository) CreatePaperModeration(ctx context.Context, rec *model.PaperModeration) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *moderationRepository) FindPaperModerationByID(ctx context.Context, id uint) (*model.PaperModeration, error) {
	var rec model.PaperModeration
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *moderationRepository) PaperModerationExists(ctx context.Context, paperID, moderatorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PaperModeration{}).
		Where("paper_id = ? AND moderator_id = ?", paperID, moderatorID).
		Count(&count).Error
	return count > 0, err
}

func (r *moderationRepository) UpdatePaperModeration(ctx context.Context, id uint, status model.ModerationStatus, comments string, reviewedAt time.Time) (*model.PaperModeration, error) {
	res := r.db.WithContext(ctx).Model(&model.PaperModeration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"comments":    comments,
			"reviewed_at": reviewedAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindPaperModerationByID(ctx, id)
}

func (r *moderationRepository) ListPaperModerationsByPaper(ctx context.Context, paperID uint) ([]model.PaperModeration, error) {
	var recs []model.PaperModeration
	err := newestFirst(r.db.WithContext(ctx)).
		Preload("Moderator").
		Preload("Paper").
		Where("paper_id = ?", paperID).
		Find(&recs).Error
	return recs, err
}

func (r *moderationRepository) ListPaperModerationsByModerator(ctx context.Context, moderatorID uint) ([]model.PaperModeration, error) {
	var recs []model.PaperModeration
	err := newestFirst(r.db.WithContext(ctx)).
		Preload("Paper").
		Where("moderator_id = ?", moderatorID).
		Find(&recs).Error
	return recs, err
}

func (r *moderationRepository) CreateQuestionModeration(ctx context.Context, rec *model.QuestionModeration) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *moderationRepository) FindQuestionModerationByID(ctx context.Context, id uint) (*model.QuestionModeration, error) {
	var rec model.QuestionModeration
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *moderationRepository) QuestionModerationExists(ctx context.Context, questionID, moderatorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.QuestionModeration{}).
		Where("question_id = ? AND moderator_id = ?", questionID, moderatorID).
		Count(&count).Error
	return count > 0, err
}

func (r *moderationRepository) UpdateQuestionModeration(ctx context.Context, id uint, status model.ModerationStatus, comments string, reviewedAt time.Time) (*model.QuestionModeration, error) {
	res := r.db.WithContext(ctx).Model(&model.QuestionModeration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"comments":    comments,
			"reviewed_at": reviewedAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindQuestionModerationByID(ctx, id)
}

func (r *moderationRepository) ListQuestionModerationsByPaper(ctx context.Context, paperID uint) ([]model.QuestionModeration, error) {
	var recs []model.QuestionModeration
	err := newestFirst(r.db.WithContext(ctx)).
		Preload("Moderator").
		Preload("Question").
		Where("paper_id = ?", paperID).
		Find(&recs).Error
	return recs, err
}

func (r *moderationRepository) ListQuestionModerationsByQuestion(ctx context.Context, questionID uint) ([]model.QuestionModeration, error) {
	var recs []model.QuestionModeration
	err := newestFirst(r.db.WithContext(ctx)).
		Preload("Moderator").
		Preload("Paper").
		Where("question_id = ?", questionID).
		Find(&recs).Error
	return recs, err
}

func (r *moderationRepository) ListQuestionModerationsByModerator(ctx context.Context, moderatorID uint) ([]model.QuestionModeration, error) {
	var recs []model.QuestionModeration
	err := newestFirst(r.db.WithContext(ctx)).
		Preload("Question").
		Preload("Paper").
		Where("moderator_id = ?", moderatorID).
		Find(&recs).Error
	return recs, err
}

func (r *moderationRepository) StatusesByPaper(ctx context.Context, paperID uint) ([]model.ModerationStatus, error) {
	var paperLevel, questionLevel []model.ModerationStatus
	err := r.db.WithContext(ctx).Model(&model.PaperModeration{}).
		Where("paper_id = ?", paperID).
		Order("id ASC").
		Pluck("status", &paperLevel).Error
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Model(&model.QuestionModeration{}).
		Where("paper_id = ?", paperID).
		Order("id ASC").
		Pluck("status", &questionLevel).Error
	if err != nil {
		return nil, err
	}
	return append(paperLevel, questionLevel...), nil
}
