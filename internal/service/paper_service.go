package service

import (
	"context"

	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PaperService interface {
	CreatePaper(ctx context.Context, actor Actor, req dto.CreatePaperRequest) (*dto.PaperResponse, error)
	GetPaper(ctx context.Context, actor Actor, id uint) (*dto.PaperResponse, error)
	ListPapers(ctx context.Context, actor Actor, limit, offset int) ([]dto.PaperResponse, error)
	UpdatePaper(ctx context.Context, actor Actor, id uint, req dto.UpdatePaperRequest) (*dto.PaperResponse, error)
	DeletePaper(ctx context.Context, actor Actor, id uint) error
	// SubmitPaper moves a draft into moderation.
	SubmitPaper(ctx context.Context, actor Actor, id uint) (*dto.PaperResponse, error)
}

type paperService struct {
	paperRepo  repository.PaperRepository
	courseRepo repository.CourseRepository
	auditLog   AuditLogService
	gate       AccessGate
	db         *gorm.DB
}

func NewPaperService(
	paperRepo repository.PaperRepository,
	courseRepo repository.CourseRepository,
	auditLog AuditLogService,
	gate AccessGate,
	db *gorm.DB,
) PaperService {
	return &paperService{
		paperRepo:  paperRepo,
		courseRepo: courseRepo,
		auditLog:   auditLog,
		gate:       gate,
		db:         db,
	}
}

func (s *paperService) CreatePaper(ctx context.Context, actor Actor, req dto.CreatePaperRequest) (*dto.PaperResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, req.CourseID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("course", req.CourseID)
		}
		return nil, err
	}
	if err := s.gate.Authorize(actor, ActionPaperCreate, Resource{OwnerID: course.CreatedBy}); err != nil {
		return nil, err
	}

	paper := model.QuestionPaper{
		CourseID:     req.CourseID,
		InstructorID: actor.UserID,
		Title:        req.Title,
		ExamType:     req.ExamType,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		FullMarks:    req.FullMarks,
		Duration:     req.Duration,
	}
	if err := s.paperRepo.Create(ctx, &paper); err != nil {
		log.Error().Err(err).Uint("courseID", req.CourseID).Msg("Failed to create paper")
		return nil, err
	}
	log.Info().Uint("paperID", paper.ID).Uint("instructorID", actor.UserID).Msg("Paper created")
	return s.GetPaper(ctx, actor, paper.ID)
}

func (s *paperService) GetPaper(ctx context.Context, actor Actor, id uint) (*dto.PaperResponse, error) {
	paper, err := s.paperRepo.FindByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("paper", id)
		}
		return nil, err
	}
	if err := s.gate.Authorize(actor, ActionPaperView, Resource{OwnerID: paper.InstructorID, PaperStatus: paper.Status}); err != nil {
		return nil, err
	}
	resp := toPaperResponse(paper)
	return &resp, nil
}

func (s *paperService) ListPapers(ctx context.Context, actor Actor, limit, offset int) ([]dto.PaperResponse, error) {
	var instructorID *uint
	switch actor.Role {
	case model.RoleInstructor:
		instructorID = &actor.UserID
	case model.RoleAdmin, model.RoleModerator:
	default:
		return nil, ErrForbidden
	}

	if limit <= 0 {
		limit = defaultPageSize
	} else if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	papers, err := s.paperRepo.FindAll(ctx, instructorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapSlice(papers, toPaperResponse), nil
}

func (s *paperService) UpdatePaper(ctx context.Context, actor Actor, id uint, req dto.UpdatePaperRequest) (*dto.PaperResponse, error) {
	err := runInTx(ctx, s.db, "update paper", func(tx *gorm.DB) error {
		paperRepo := s.paperRepo.WithTx(tx)
		paper, err := lockPaper(ctx, paperRepo, id)
		if err != nil {
			return err
		}
		if err := authorizeDraftEdit(s.gate, actor, ActionPaperUpdate, paper); err != nil {
			return err
		}
		_, err = paperRepo.Update(ctx, id, repository.PaperUpdate{
			Title:        req.Title,
			ExamType:     req.ExamType,
			Semester:     req.Semester,
			AcademicYear: req.AcademicYear,
			FullMarks:    req.FullMarks,
			Duration:     req.Duration,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetPaper(ctx, actor, id)
}

func (s *paperService) DeletePaper(ctx context.Context, actor Actor, id uint) error {
	return runInTx(ctx, s.db, "delete paper", func(tx *gorm.DB) error {
		paperRepo := s.paperRepo.WithTx(tx)
		paper, err := lockPaper(ctx, paperRepo, id)
		if err != nil {
			return err
		}
		if err := authorizeDraftEdit(s.gate, actor, ActionPaperDelete, paper); err != nil {
			return err
		}
		if err := paperRepo.Delete(ctx, id); err != nil {
			return err
		}
		log.Info().Uint("paperID", id).Uint("actorID", actor.UserID).Msg("Paper deleted")
		return nil
	})
}

func (s *paperService) SubmitPaper(ctx context.Context, actor Actor, id uint) (*dto.PaperResponse, error) {
	err := runInTx(ctx, s.db, "submit paper", func(tx *gorm.DB) error {
		paperRepo := s.paperRepo.WithTx(tx)
		paper, err := lockPaper(ctx, paperRepo, id)
		if err != nil {
			return err
		}
		if err := s.gate.Authorize(actor, ActionPaperSubmit, Resource{OwnerID: paper.InstructorID, PaperStatus: paper.Status}); err != nil {
			return err
		}
		if paper.Status != model.PaperStatusDraft {
			return &InvalidPaperStateError{Actual: paper.Status, Expected: []model.PaperStatus{model.PaperStatusDraft}}
		}
		updated, err := paperRepo.SetStatus(ctx, id, model.PaperStatusSubmitted)
		if err != nil {
			return err
		}
		return s.auditLog.Append(ctx, tx, actor.UserID, model.ActionSubmitPaper, map[string]interface{}{
			"paper_id": id,
			"version":  updated.Version,
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("paperID", id).Msg("Paper submitted for moderation")
	return s.GetPaper(ctx, actor, id)
}

// authorizeDraftEdit checks an edit of paper. The owner of a paper that has
// left draft gets an InvalidPaperStateError; everyone else goes through the
// gate, so a stranger learns nothing about the paper's state.
func authorizeDraftEdit(gate AccessGate, actor Actor, action Action, paper *model.QuestionPaper) error {
	if actor.Role == model.RoleInstructor && paper.InstructorID == actor.UserID && paper.Status != model.PaperStatusDraft {
		return &InvalidPaperStateError{Actual: paper.Status, Expected: []model.PaperStatus{model.PaperStatusDraft}}
	}
	return gate.Authorize(actor, action, Resource{OwnerID: paper.InstructorID, PaperStatus: paper.Status})
}

func lockPaper(ctx context.Context, repo repository.PaperRepository, id uint) (*model.QuestionPaper, error) {
	paper, err := repo.FindByIDForUpdate(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("paper", id)
		}
		return nil, err
	}
	return paper, nil
}
