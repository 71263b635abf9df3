package service

import (
	"context"

	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/repository"
	"github.com/rs/zerolog/log"
)

type QuestionService interface {
	CreateQuestion(ctx context.Context, actor Actor, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	GetQuestion(ctx context.Context, id uint) (*dto.QuestionResponse, error)
	ListQuestions(ctx context.Context, courseID *uint) ([]dto.QuestionResponse, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	courseRepo   repository.CourseRepository
	gate         AccessGate
}

func NewQuestionService(questionRepo repository.QuestionRepository, courseRepo repository.CourseRepository, gate AccessGate) QuestionService {
	return &questionService{questionRepo: questionRepo, courseRepo: courseRepo, gate: gate}
}

func (s *questionService) CreateQuestion(ctx context.Context, actor Actor, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	if err := s.gate.Authorize(actor, ActionQuestionCreate, Resource{}); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.FindByID(ctx, req.CourseID); err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("course", req.CourseID)
		}
		return nil, err
	}

	question := model.Question{
		CourseID:     req.CourseID,
		CreatedBy:    actor.UserID,
		Content:      req.Content,
		QuestionType: req.QuestionType,
		Marks:        req.Marks,
	}
	if err := s.questionRepo.Create(ctx, &question); err != nil {
		log.Error().Err(err).Uint("courseID", req.CourseID).Msg("Failed to create question")
		return nil, err
	}
	log.Info().Uint("questionID", question.ID).Uint("courseID", question.CourseID).Msg("Question created")
	resp := toQuestionResponse(&question)
	return &resp, nil
}

func (s *questionService) GetQuestion(ctx context.Context, id uint) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("question", id)
		}
		return nil, err
	}
	resp := toQuestionResponse(question)
	return &resp, nil
}

func (s *questionService) ListQuestions(ctx context.Context, courseID *uint) ([]dto.QuestionResponse, error) {
	questions, err := s.questionRepo.FindAll(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return mapSlice(questions, toQuestionResponse), nil
}
