package service

import (
	"context"
	"fmt"

	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReconcileStatus derives a submitted paper's status from its moderation
// records. Rejection dominates approval, which dominates the submitted default.
func ReconcileStatus(statuses []model.ModerationStatus) model.PaperStatus {
	result := model.PaperStatusSubmitted
	for _, s := range statuses {
		switch s {
		case model.ModerationRejected:
			return model.PaperStatusRejected
		case model.ModerationApproved:
			result = model.PaperStatusApproved
		}
	}
	return result
}

// Reconciler recomputes and persists a paper's derived status. It must run
// inside the transaction that changed the ledger.
type Reconciler interface {
	Reconcile(ctx context.Context, tx *gorm.DB, paperID uint) (*model.QuestionPaper, error)
}

type reconciler struct {
	paperRepo      repository.PaperRepository
	moderationRepo repository.ModerationRepository
}

func NewReconciler(paperRepo repository.PaperRepository, moderationRepo repository.ModerationRepository) Reconciler {
	return &reconciler{paperRepo: paperRepo, moderationRepo: moderationRepo}
}

func (r *reconciler) Reconcile(ctx context.Context, tx *gorm.DB, paperID uint) (*model.QuestionPaper, error) {
	statuses, err := r.moderationRepo.WithTx(tx).StatusesByPaper(ctx, paperID)
	if err != nil {
		return nil, fmt.Errorf("loading moderation statuses for paper %d: %w", paperID, err)
	}

	newStatus := ReconcileStatus(statuses)
	paper, err := r.paperRepo.WithTx(tx).SetStatus(ctx, paperID, newStatus)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("paper", paperID)
		}
		return nil, fmt.Errorf("persisting status for paper %d: %w", paperID, err)
	}

	log.Debug().
		Uint("paperID", paperID).
		Int("records", len(statuses)).
		Str("status", string(newStatus)).
		Int("version", paper.Version).
		Msg("Reconciled paper status")
	return paper, nil
}
