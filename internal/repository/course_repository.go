package repository

import (
	"context"

	"github.com/lshigami/qams/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id uint) (*model.Course, error)
	// FindAll lists courses newest first; a non-nil creatorID restricts to that user's courses.
	FindAll(ctx context.Context, creatorID *uint) ([]model.Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).Preload("Creator").First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAll(ctx context.Context, creatorID *uint) ([]model.Course, error) {
	var courses []model.Course
	query := r.db.WithContext(ctx).Preload("Creator")
	if creatorID != nil {
		query = query.Where("created_by = ?", *creatorID)
	}
	err := query.Order("created_at DESC").Find(&courses).Error
	return courses, err
}
