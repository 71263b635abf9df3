package repository

import (
	"context"
	"database/sql"

	"github.com/lshigami/qams/internal/model"
	"gorm.io/gorm"
)

type PaperQuestionRepository interface {
	WithTx(tx *gorm.DB) PaperQuestionRepository
	Add(ctx context.Context, pq *model.PaperQuestion) error
	FindByID(ctx context.Context, id uint) (*model.PaperQuestion, error)
	FindByPaper(ctx context.Context, paperID uint) ([]model.PaperQuestion, error)
	Exists(ctx context.Context, paperID, questionID uint) (bool, error)
	NextSequence(ctx context.Context, paperID uint) (int, error)
	Remove(ctx context.Context, id uint) error
	// Reorder compacts the sequence of a paper's questions to 1..N.
	Reorder(ctx context.Context, paperID uint) error
}

type paperQuestionRepository struct {
	db *gorm.DB
}

func NewPaperQuestionRepository(db *gorm.DB) PaperQuestionRepository {
	return &paperQuestionRepository{db: db}
}

func (r *paperQuestionRepository) WithTx(tx *gorm.DB) PaperQuestionRepository {
	return &paperQuestionRepository{db: tx}
}

func (r *paperQuestionRepository) Add(ctx context.Context, pq *model.PaperQuestion) error {
	return r.db.WithContext(ctx).Create(pq).Error
}

func (r *paperQuestionRepository) FindByID(ctx context.Context, id uint) (*model.PaperQuestion, error) {
	var pq model.PaperQuestion
	if err := r.db.WithContext(ctx).Preload("Question").First(&pq, id).Error; err != nil {
		return nil, err
	}
	return &pq, nil
}

func (r *paperQuestionRepository) FindByPaper(ctx context.Context, paperID uint) ([]model.PaperQuestion, error) {
	var pqs []model.PaperQuestion
	err := r.db.WithContext(ctx).
		Preload("Question").
		Where("paper_id = ?", paperID).
		Order("sequence ASC").
		Order("id ASC").
		Find(&pqs).Error
	return pqs, err
}

func (r *paperQuestionRepository) Exists(ctx context.Context, paperID, questionID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PaperQuestion{}).
		Where("paper_id = ? AND question_id = ?", paperID, questionID).
		Count(&count).Error
	return count > 0, err
}

func (r *paperQuestionRepository) NextSequence(ctx context.Context, paperID uint) (int, error) {
	var maxSeq sql.NullInt64
	err := r.db.WithContext(ctx).Model(&model.PaperQuestion{}).
		Select("MAX(sequence)").
		Where("paper_id = ?", paperID).
		Row().
		Scan(&maxSeq)
	if err != nil {
		return 0, err
	}
	return int(maxSeq.Int64) + 1, nil
}

func (r *paperQuestionRepository) Remove(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.PaperQuestion{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *paperQuestionRepository) Reorder(ctx context.Context, paperID uint) error {
	var pqs []model.PaperQuestion
	err := r.db.WithContext(ctx).
		Where("paper_id = ?", paperID).
		Order("sequence ASC").
		Order("id ASC").
		Find(&pqs).Error
	if err != nil {
		return err
	}
	for i, pq := range pqs {
		if pq.Sequence == i+1 {
			continue
		}
		err := r.db.WithContext(ctx).Model(&model.PaperQuestion{}).
			Where("id = ?", pq.ID).
			Update("sequence", i+1).Error
		if err != nil {
			return err
		}
	}
	return nil
}
