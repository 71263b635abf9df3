package service

import (
	"context"
	"time"

	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	paperClaimStates    = []model.PaperStatus{model.PaperStatusSubmitted}
	questionClaimStates = []model.PaperStatus{model.PaperStatusSubmitted, model.PaperStatusApproved}
)

// ModerationService runs the paper-level and question-level moderation
// workflow. Every mutation locks the paper, changes the ledger, reconciles the
// paper status and appends one audit entry inside a single transaction.
type ModerationService interface {
	ClaimPaper(ctx context.Context, actor Actor, paperID uint, req dto.ClaimRequest) (*dto.PaperModerationResult, error)
	ClaimQuestion(ctx context.Context, actor Actor, paperID, questionID uint, req dto.ClaimRequest) (*dto.QuestionModerationResult, error)

	ApprovePaperModeration(ctx context.Context, actor Actor, id uint, comments string) (*dto.PaperModerationResult, error)
	RejectPaperModeration(ctx context.Context, actor Actor, id uint, comments string) (*dto.PaperModerationResult, error)
	ApproveQuestionModeration(ctx context.Context, actor Actor, id uint, comments string) (*dto.QuestionModerationResult, error)
	RejectQuestionModeration(ctx context.Context, actor Actor, id uint, comments string) (*dto.QuestionModerationResult, error)

	ListPaperModerations(ctx context.Context, actor Actor, paperID uint) ([]dto.PaperModerationResponse, error)
	ListQuestionModerationsByPaper(ctx context.Context, actor Actor, paperID uint) ([]dto.QuestionModerationResponse, error)
	ListQuestionModerationsByQuestion(ctx context.Context, actor Actor, questionID uint) ([]dto.QuestionModerationResponse, error)
	ListMine(ctx context.Context, actor Actor) (*dto.MyModerationsResponse, error)
}

type moderationService struct {
	paperRepo         repository.PaperRepository
	questionRepo      repository.QuestionRepository
	paperQuestionRepo repository.PaperQuestionRepository
	moderationRepo    repository.ModerationRepository
	reconciler        Reconciler
	auditLog          AuditLogService
	gate              AccessGate
	db                *gorm.DB
	now               func() time.Time
}

func NewModerationService(
	paperRepo repository.PaperRepository,
	questionRepo repository.QuestionRepository,
	paperQuestionRepo repository.PaperQuestionRepository,
	moderationRepo repository.ModerationRepository,
	reconciler Reconciler,
	auditLog AuditLogService,
	gate AccessGate,
	db *gorm.DB,
) ModerationService {
	return &moderationService{
		paperRepo:         paperRepo,
		questionRepo:      questionRepo,
		paperQuestionRepo: paperQuestionRepo,
		moderationRepo:    moderationRepo,
		reconciler:        reconciler,
		auditLog:          auditLog,
		gate:              gate,
		db:                db,
		now:               time.Now,
	}
}

// lockClaimablePaper loads and row-locks the paper, then checks its status
// against the states a claim is allowed in.
func (s *moderationService) lockClaimablePaper(ctx context.Context, tx *gorm.DB, paperID uint, allowed []model.PaperStatus) (*model.QuestionPaper, error) {
	paper, err := s.paperRepo.WithTx(tx).FindByIDForUpdate(ctx, paperID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("paper", paperID)
		}
		return nil, err
	}
	for _, st := range allowed {
		if paper.Status == st {
			return paper, nil
		}
	}
	return nil, &InvalidPaperStateError{Actual: paper.Status, Expected: allowed}
}

func initialStatus(req dto.ClaimRequest) (model.ModerationStatus, error) {
	if req.Status == "" {
		return model.ModerationPending, nil
	}
	if !req.Status.Valid() {
		return "", ErrValidation
	}
	return req.Status, nil
}

func (s *moderationService) ClaimPaper(ctx context.Context, actor Actor, paperID uint, req dto.ClaimRequest) (*dto.PaperModerationResult, error) {
	if err := s.gate.Authorize(actor, ActionModerationClaim, Resource{}); err != nil {
		return nil, err
	}
	status, err := initialStatus(req)
	if err != nil {
		return nil, err
	}

	var (
		rec   model.PaperModeration
		paper *model.QuestionPaper
	)
	err = runInTx(ctx, s.db, "claim paper", func(tx *gorm.DB) error {
		if _, err := s.lockClaimablePaper(ctx, tx, paperID, paperClaimStates); err != nil {
			return err
		}

		modRepo := s.moderationRepo.WithTx(tx)
		exists, err := modRepo.PaperModerationExists(ctx, paperID, actor.UserID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateClaim
		}

		rec = model.PaperModeration{
			PaperID:     paperID,
			ModeratorID: actor.UserID,
			Status:      status,
			Comments:    req.Comments,
			ReviewedAt:  s.now(),
		}
		if err := modRepo.CreatePaperModeration(ctx, &rec); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateClaim
			}
			return err
		}

		if paper, err = s.reconciler.Reconcile(ctx, tx, paperID); err != nil {
			return err
		}

		return s.auditLog.Append(ctx, tx, actor.UserID, model.ActionClaimPaper, map[string]interface{}{
			"paper_id":      paperID,
			"moderation_id": rec.ID,
			"status":        string(rec.Status),
			"comments":      req.Comments,
		})
	})
	if err != nil {
		log.Warn().Err(err).Uint("paperID", paperID).Uint("moderatorID", actor.UserID).Msg("ClaimPaper failed")
		return nil, err
	}

	log.Info().Uint("paperID", paperID).Uint("moderatorID", actor.UserID).Str("paperStatus", string(paper.Status)).Msg("Paper claimed for moderation")
	return &dto.PaperModerationResult{
		Moderation:   toPaperModerationResponse(&rec),
		PaperStatus:  paper.Status,
		PaperVersion: paper.Version,
	}, nil
}

func (s *moderationService) ClaimQuestion(ctx context.Context, actor Actor, paperID, questionID uint, req dto.ClaimRequest) (*dto.QuestionModerationResult, error) {
	if err := s.gate.Authorize(actor, ActionModerationClaim, Resource{}); err != nil {
		return nil, err
	}
	status, err := initialStatus(req)
	if err != nil {
		return nil, err
	}

	var (
		rec   model.QuestionModeration
		paper *model.QuestionPaper
	)
	err = runInTx(ctx, s.db, "claim question", func(tx *gorm.DB) error {
		if _, err := s.lockClaimablePaper(ctx, tx, paperID, questionClaimStates); err != nil {
			return err
		}

		member, err := s.paperQuestionRepo.WithTx(tx).Exists(ctx, paperID, questionID)
		if err != nil {
			return err
		}
		if !member {
			return notFound("question in paper", questionID)
		}

		modRepo := s.moderationRepo.WithTx(tx)
		exists, err := modRepo.QuestionModerationExists(ctx, questionID, actor.UserID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateClaim
		}

		rec = model.QuestionModeration{
			PaperID:     paperID,
			QuestionID:  questionID,
			ModeratorID: actor.UserID,
			Status:      status,
			Comments:    req.Comments,
			ReviewedAt:  s.now(),
		}
		if err := modRepo.CreateQuestionModeration(ctx, &rec); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateClaim
			}
			return err
		}

		if paper, err = s.reconciler.Reconcile(ctx, tx, paperID); err != nil {
			return err
		}

		return s.auditLog.Append(ctx, tx, actor.UserID, model.ActionClaimQuestion, map[string]interface{}{
			"paper_id":      paperID,
			"question_id":   questionID,
			"moderation_id": rec.ID,
			"status":        string(rec.Status),
			"comments":      req.Comments,
		})
	})
	if err != nil {
		log.Warn().Err(err).Uint("paperID", paperID).Uint("questionID", questionID).Uint("moderatorID", actor.UserID).Msg("ClaimQuestion failed")
		return nil, err
	}

	log.Info().Uint("paperID", paperID).Uint("questionID", questionID).Uint("moderatorID", actor.UserID).Str("paperStatus", string(paper.Status)).Msg("Question claimed for moderation")
	return &dto.QuestionModerationResult{
		Moderation:   toQuestionModerationResponse(&rec),
		PaperStatus:  paper.Status,
		PaperVersion: paper.Version,
	}, nil
}

func (s *moderationService) ApprovePaperModeration(ctx context.Context, actor Actor, id uint, comments string) (*dto.PaperModerationResult, error) {
	return s.reviewPaperModeration(ctx, actor, id, model.ModerationApproved, comments)
}

func (s *moderationService) RejectPaperModeration(ctx context.Context, actor Actor, id uint, comments string) (*dto.PaperModerationResult, error) {
	return s.reviewPaperModeration(ctx, actor, id, model.ModerationRejected, comments)
}

func (s *moderationService) ApproveQuestionModeration(ctx context.Context, actor Actor, id uint, comments string) (*dto.QuestionModerationResult, error) {
	return s.reviewQuestionModeration(ctx, actor, id, model.ModerationApproved, comments)
}

func (s *moderationService) RejectQuestionModeration(ctx context.Context, actor Actor, id uint, comments string) (*dto.QuestionModerationResult, error) {
	return s.reviewQuestionModeration(ctx, actor, id, model.ModerationRejected, comments)
}

func paperReviewAction(status model.ModerationStatus) string {
	if status == model.ModerationRejected {
		return model.ActionPaperRejected
	}
	return model.ActionPaperApproved
}

func questionReviewAction(status model.ModerationStatus) string {
	if status == model.ModerationRejected {
		return model.ActionQuestionRejected
	}
	return model.ActionQuestionApproved
}

func (s *moderationService) reviewPaperModeration(ctx context.Context, actor Actor, id uint, status model.ModerationStatus, comments string) (*dto.PaperModerationResult, error) {
	// Role check up front; ownership of the record is checked once it is loaded.
	if err := s.gate.Authorize(actor, ActionModerationReview, Resource{OwnerID: actor.UserID}); err != nil {
		return nil, err
	}

	var (
		rec   *model.PaperModeration
		paper *model.QuestionPaper
	)
	err := runInTx(ctx, s.db, "review paper moderation", func(tx *gorm.DB) error {
		modRepo := s.moderationRepo.WithTx(tx)
		existing, err := modRepo.FindPaperModerationByID(ctx, id)
		if err != nil {
			if isRecordNotFound(err) {
				return notFound("paper moderation", id)
			}
			return err
		}
		if err := s.gate.Authorize(actor, ActionModerationReview, Resource{OwnerID: existing.ModeratorID}); err != nil {
			return err
		}
		if _, err := s.paperRepo.WithTx(tx).FindByIDForUpdate(ctx, existing.PaperID); err != nil {
			if isRecordNotFound(err) {
				return notFound("paper", existing.PaperID)
			}
			return err
		}

		if rec, err = modRepo.UpdatePaperModeration(ctx, id, status, comments, s.now()); err != nil {
			if isRecordNotFound(err) {
				return notFound("paper moderation", id)
			}
			return err
		}

		if paper, err = s.reconciler.Reconcile(ctx, tx, rec.PaperID); err != nil {
			return err
		}

		return s.auditLog.Append(ctx, tx, actor.UserID, paperReviewAction(status), map[string]interface{}{
			"paper_id":      rec.PaperID,
			"moderation_id": rec.ID,
			"comments":      comments,
		})
	})
	if err != nil {
		log.Warn().Err(err).Uint("moderationID", id).Str("status", string(status)).Msg("Paper moderation review failed")
		return nil, err
	}

	log.Info().Uint("moderationID", id).Uint("paperID", rec.PaperID).Str("status", string(status)).Str("paperStatus", string(paper.Status)).Msg("Paper moderation reviewed")
	return &dto.PaperModerationResult{
		Moderation:   toPaperModerationResponse(rec),
		PaperStatus:  paper.Status,
		PaperVersion: paper.Version,
	}, nil
}

func (s *moderationService) reviewQuestionModeration(ctx context.Context, actor Actor, id uint, status model.ModerationStatus, comments string) (*dto.QuestionModerationResult, error) {
	if err := s.gate.Authorize(actor, ActionModerationReview, Resource{OwnerID: actor.UserID}); err != nil {
		return nil, err
	}

	var (
		rec   *model.QuestionModeration
		paper *model.QuestionPaper
	)
	err := runInTx(ctx, s.db, "review question moderation", func(tx *gorm.DB) error {
		modRepo := s.moderationRepo.WithTx(tx)
		existing, err := modRepo.FindQuestionModerationByID(ctx, id)
		if err != nil {
			if isRecordNotFound(err) {
				return notFound("question moderation", id)
			}
			return err
		}
		if err := s.gate.Authorize(actor, ActionModerationReview, Resource{OwnerID: existing.ModeratorID}); err != nil {
			return err
		}
		if _, err := s.paperRepo.WithTx(tx).FindByIDForUpdate(ctx, existing.PaperID); err != nil {
			if isRecordNotFound(err) {
				return notFound("paper", existing.PaperID)
			}
			return err
		}

		if rec, err = modRepo.UpdateQuestionModeration(ctx, id, status, comments, s.now()); err != nil {
			if isRecordNotFound(err) {
				return notFound("question moderation", id)
			}
			return err
		}

		if paper, err = s.reconciler.Reconcile(ctx, tx, rec.PaperID); err != nil {
			return err
		}

		return s.auditLog.Append(ctx, tx, actor.UserID, questionReviewAction(status), map[string]interface{}{
			"paper_id":      rec.PaperID,
			"question_id":   rec.QuestionID,
			"moderation_id": rec.ID,
			"comments":      comments,
		})
	})
	if err != nil {
		log.Warn().Err(err).Uint("moderationID", id).Str("status", string(status)).Msg("Question moderation review failed")
		return nil, err
	}

	log.Info().Uint("moderationID", id).Uint("paperID", rec.PaperID).Uint("questionID", rec.QuestionID).Str("status", string(status)).Str("paperStatus", string(paper.Status)).Msg("Question moderation reviewed")
	return &dto.QuestionModerationResult{
		Moderation:   toQuestionModerationResponse(rec),
		PaperStatus:  paper.Status,
		PaperVersion: paper.Version,
	}, nil
}

// paperForViewing loads a paper and checks the actor may see its moderation.
func (s *moderationService) paperForViewing(ctx context.Context, actor Actor, paperID uint) error {
	paper, err := s.paperRepo.FindByID(ctx, paperID)
	if err != nil {
		if isRecordNotFound(err) {
			return notFound("paper", paperID)
		}
		return err
	}
	return s.gate.Authorize(actor, ActionModerationView, Resource{OwnerID: paper.InstructorID, PaperStatus: paper.Status})
}

func (s *moderationService) ListPaperModerations(ctx context.Context, actor Actor, paperID uint) ([]dto.PaperModerationResponse, error) {
	if err := s.paperForViewing(ctx, actor, paperID); err != nil {
		return nil, err
	}
	recs, err := s.moderationRepo.ListPaperModerationsByPaper(ctx, paperID)
	if err != nil {
		return nil, err
	}
	return mapSlice(recs, toPaperModerationResponse), nil
}

func (s *moderationService) ListQuestionModerationsByPaper(ctx context.Context, actor Actor, paperID uint) ([]dto.QuestionModerationResponse, error) {
	if err := s.paperForViewing(ctx, actor, paperID); err != nil {
		return nil, err
	}
	recs, err := s.moderationRepo.ListQuestionModerationsByPaper(ctx, paperID)
	if err != nil {
		return nil, err
	}
	return mapSlice(recs, toQuestionModerationResponse), nil
}

func (s *moderationService) ListQuestionModerationsByQuestion(ctx context.Context, actor Actor, questionID uint) ([]dto.QuestionModerationResponse, error) {
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("question", questionID)
		}
		return nil, err
	}
	recs, err := s.moderationRepo.ListQuestionModerationsByQuestion(ctx, question.ID)
	if err != nil {
		return nil, err
	}

	// A question can sit in several papers; keep the records whose paper the
	// actor may see.
	visible := make([]model.QuestionModeration, 0, len(recs))
	for _, rec := range recs {
		if rec.Paper == nil {
			continue
		}
		res := Resource{OwnerID: rec.Paper.InstructorID, PaperStatus: rec.Paper.Status}
		if s.gate.Authorize(actor, ActionModerationView, res) == nil {
			visible = append(visible, rec)
		}
	}
	return mapSlice(visible, toQuestionModerationResponse), nil
}

func (s *moderationService) ListMine(ctx context.Context, actor Actor) (*dto.MyModerationsResponse, error) {
	if err := s.gate.Authorize(actor, ActionModerationListMine, Resource{}); err != nil {
		return nil, err
	}
	papers, err := s.moderationRepo.ListPaperModerationsByModerator(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	questions, err := s.moderationRepo.ListQuestionModerationsByModerator(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.MyModerationsResponse{
		Papers:    mapSlice(papers, toPaperModerationResponse),
		Questions: mapSlice(questions, toQuestionModerationResponse),
	}, nil
}
