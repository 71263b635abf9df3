package service

import (
	"testing"

	"github.com/lshigami/qams/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestReconcileStatus(t *testing.T) {
	const (
		pending  = model.ModerationPending
		approved = model.ModerationApproved
		rejected = model.ModerationRejected
	)
	tests := []struct {
		name     string
		statuses []model.ModerationStatus
		want     model.PaperStatus
	}{
		{name: "no records", statuses: nil, want: model.PaperStatusSubmitted},
		{name: "only pending", statuses: []model.ModerationStatus{pending, pending}, want: model.PaperStatusSubmitted},
		{name: "one approval", statuses: []model.ModerationStatus{pending, approved}, want: model.PaperStatusApproved},
		{name: "all approved", statuses: []model.ModerationStatus{approved, approved}, want: model.PaperStatusApproved},
		{name: "rejection first", statuses: []model.ModerationStatus{rejected, approved}, want: model.PaperStatusRejected},
		{name: "rejection last", statuses: []model.ModerationStatus{approved, pending, rejected}, want: model.PaperStatusRejected},
		{name: "unknown status ignored", statuses: []model.ModerationStatus{"escalated"}, want: model.PaperStatusSubmitted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReconcileStatus(tt.statuses))
		})
	}
}

func TestReconciler_PersistsOverwriteWithVersionBump(t *testing.T) {
	f := newFixture(t)
	paper, _ := f.submittedPaper(t, 1)

	rec := model.PaperModeration{PaperID: paper.ID, ModeratorID: f.mod1.UserID, Status: model.ModerationRejected}
	is := assert.New(t)
	is.NoError(f.moderations.CreatePaperModeration(f.ctx, &rec))

	r := NewReconciler(f.papers, f.moderations)
	updated, err := r.Reconcile(f.ctx, f.db, paper.ID)
	is.NoError(err)
	is.Equal(model.PaperStatusRejected, updated.Status)
	is.Equal(paper.Version+1, updated.Version)

	// Reconciling again with nothing changed still rewrites and bumps.
	again, err := r.Reconcile(f.ctx, f.db, paper.ID)
	is.NoError(err)
	is.Equal(model.PaperStatusRejected, again.Status)
	is.Equal(paper.Version+2, again.Version)

	_, err = r.Reconcile(f.ctx, f.db, 9999)
	is.ErrorIs(err, ErrNotFound)
}
