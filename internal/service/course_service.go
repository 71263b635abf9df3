package service

import (
	"context"
	"fmt"

	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/repository"
	"github.com/rs/zerolog/log"
)

type CourseService interface {
	CreateCourse(ctx context.Context, actor Actor, req dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, id uint) (*dto.CourseResponse, error)
	// ListCourses returns an instructor's own courses, or every course for other roles.
	ListCourses(ctx context.Context, actor Actor) ([]dto.CourseResponse, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
	gate       AccessGate
}

func NewCourseService(courseRepo repository.CourseRepository, gate AccessGate) CourseService {
	return &courseService{courseRepo: courseRepo, gate: gate}
}

func (s *courseService) CreateCourse(ctx context.Context, actor Actor, req dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if err := s.gate.Authorize(actor, ActionCourseCreate, Resource{}); err != nil {
		return nil, err
	}
	course := model.Course{
		Code:      req.Code,
		Title:     req.Title,
		L:         req.L,
		T:         req.T,
		P:         req.P,
		CreatedBy: actor.UserID,
	}
	if err := s.courseRepo.Create(ctx, &course); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("course code %q: %w", req.Code, ErrAlreadyExists)
		}
		log.Error().Err(err).Str("code", req.Code).Msg("Failed to create course")
		return nil, err
	}
	log.Info().Uint("courseID", course.ID).Str("code", course.Code).Msg("Course created")
	return s.GetCourse(ctx, course.ID)
}

func (s *courseService) GetCourse(ctx context.Context, id uint) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("course", id)
		}
		return nil, err
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) ListCourses(ctx context.Context, actor Actor) ([]dto.CourseResponse, error) {
	var creatorID *uint
	if actor.Role == model.RoleInstructor {
		creatorID = &actor.UserID
	}
	courses, err := s.courseRepo.FindAll(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	return mapSlice(courses, toCourseResponse), nil
}
