package service

import (
	"context"
	"fmt"

	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PaperQuestionService manages which questions make up a draft paper.
type PaperQuestionService interface {
	AddQuestion(ctx context.Context, actor Actor, paperID uint, req dto.AddPaperQuestionRequest) (*dto.PaperQuestionResponse, error)
	ListQuestions(ctx context.Context, actor Actor, paperID uint) ([]dto.PaperQuestionResponse, error)
	RemoveQuestion(ctx context.Context, actor Actor, paperQuestionID uint) error
}

type paperQuestionService struct {
	paperRepo         repository.PaperRepository
	questionRepo      repository.QuestionRepository
	paperQuestionRepo repository.PaperQuestionRepository
	auditLog          AuditLogService
	gate              AccessGate
	db                *gorm.DB
}

func NewPaperQuestionService(
	paperRepo repository.PaperRepository,
	questionRepo repository.QuestionRepository,
	paperQuestionRepo repository.PaperQuestionRepository,
	auditLog AuditLogService,
	gate AccessGate,
	db *gorm.DB,
) PaperQuestionService {
	return &paperQuestionService{
		paperRepo:         paperRepo,
		questionRepo:      questionRepo,
		paperQuestionRepo: paperQuestionRepo,
		auditLog:          auditLog,
		gate:              gate,
		db:                db,
	}
}

func (s *paperQuestionService) AddQuestion(ctx context.Context, actor Actor, paperID uint, req dto.AddPaperQuestionRequest) (*dto.PaperQuestionResponse, error) {
	var pq model.PaperQuestion
	err := runInTx(ctx, s.db, "add paper question", func(tx *gorm.DB) error {
		paperRepo := s.paperRepo.WithTx(tx)
		paper, err := lockPaper(ctx, paperRepo, paperID)
		if err != nil {
			return err
		}
		if err := authorizeDraftEdit(s.gate, actor, ActionPaperQuestions, paper); err != nil {
			return err
		}
		// Membership drives question claims, so it is frozen once moderation starts.
		if paper.Status != model.PaperStatusDraft {
			return &InvalidPaperStateError{Actual: paper.Status, Expected: []model.PaperStatus{model.PaperStatusDraft}}
		}

		question, err := s.questionRepo.WithTx(tx).FindByID(ctx, req.QuestionID)
		if err != nil {
			if isRecordNotFound(err) {
				return notFound("question", req.QuestionID)
			}
			return err
		}
		if question.CourseID != paper.CourseID {
			return fmt.Errorf("question %d belongs to course %d, paper to course %d: %w",
				question.ID, question.CourseID, paper.CourseID, ErrValidation)
		}

		pqRepo := s.paperQuestionRepo.WithTx(tx)
		exists, err := pqRepo.Exists(ctx, paperID, req.QuestionID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("question %d in paper %d: %w", req.QuestionID, paperID, ErrAlreadyExists)
		}

		seq := req.Sequence
		if seq <= 0 {
			if seq, err = pqRepo.NextSequence(ctx, paperID); err != nil {
				return err
			}
		}
		marks := req.Marks
		if marks == 0 {
			marks = question.Marks
		}

		pq = model.PaperQuestion{
			PaperID:    paperID,
			QuestionID: req.QuestionID,
			Sequence:   seq,
			Marks:      marks,
			Section:    req.Section,
		}
		if err := pqRepo.Add(ctx, &pq); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("question %d in paper %d: %w", req.QuestionID, paperID, ErrAlreadyExists)
			}
			return err
		}
		pq.Question = question

		if _, err := paperRepo.Update(ctx, paperID, repository.PaperUpdate{}); err != nil {
			return err
		}
		return s.auditLog.Append(ctx, tx, actor.UserID, model.ActionAddQuestionToPaper, map[string]interface{}{
			"paper_id":    paperID,
			"question_id": req.QuestionID,
			"sequence":    seq,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("paperID", paperID).Uint("questionID", req.QuestionID).Int("sequence", pq.Sequence).Msg("Question added to paper")
	resp := toPaperQuestionResponse(&pq)
	return &resp, nil
}

func (s *paperQuestionService) ListQuestions(ctx context.Context, actor Actor, paperID uint) ([]dto.PaperQuestionResponse, error) {
	paper, err := s.paperRepo.FindByID(ctx, paperID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("paper", paperID)
		}
		return nil, err
	}
	if err := s.gate.Authorize(actor, ActionPaperView, Resource{OwnerID: paper.InstructorID, PaperStatus: paper.Status}); err != nil {
		return nil, err
	}
	pqs, err := s.paperQuestionRepo.FindByPaper(ctx, paperID)
	if err != nil {
		return nil, err
	}
	return mapSlice(pqs, toPaperQuestionResponse), nil
}

func (s *paperQuestionService) RemoveQuestion(ctx context.Context, actor Actor, paperQuestionID uint) error {
	return runInTx(ctx, s.db, "remove paper question", func(tx *gorm.DB) error {
		pqRepo := s.paperQuestionRepo.WithTx(tx)
		pq, err := pqRepo.FindByID(ctx, paperQuestionID)
		if err != nil {
			if isRecordNotFound(err) {
				return notFound("paper question", paperQuestionID)
			}
			return err
		}

		paperRepo := s.paperRepo.WithTx(tx)
		paper, err := lockPaper(ctx, paperRepo, pq.PaperID)
		if err != nil {
			return err
		}
		if err := authorizeDraftEdit(s.gate, actor, ActionPaperQuestions, paper); err != nil {
			return err
		}
		// Membership drives question claims, so it is frozen once moderation starts.
		if paper.Status != model.PaperStatusDraft {
			return &InvalidPaperStateError{Actual: paper.Status, Expected: []model.PaperStatus{model.PaperStatusDraft}}
		}

		if err := pqRepo.Remove(ctx, paperQuestionID); err != nil {
			if isRecordNotFound(err) {
				return notFound("paper question", paperQuestionID)
			}
			return err
		}
		if err := pqRepo.Reorder(ctx, pq.PaperID); err != nil {
			return err
		}
		if _, err := paperRepo.Update(ctx, pq.PaperID, repository.PaperUpdate{}); err != nil {
			return err
		}

		log.Info().Uint("paperID", pq.PaperID).Uint("questionID", pq.QuestionID).Msg("Question removed from paper")
		return s.auditLog.Append(ctx, tx, actor.UserID, model.ActionRemovePaperQuestion, map[string]interface{}{
			"paper_id":          pq.PaperID,
			"question_id":       pq.QuestionID,
			"paper_question_id": paperQuestionID,
		})
	})
}
