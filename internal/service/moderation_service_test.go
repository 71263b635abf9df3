package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClaimPaper_DefaultsToPendingAndBumpsVersion(t *testing.T) {
	f := newFixture(t)
	paper, _ := f.submittedPaper(t, 2)

	res, err := f.moderation.ClaimPaper(f.ctx, f.mod1, paper.ID, dto.ClaimRequest{Comments: "looking"})
	require.NoError(t, err)

	assert.Equal(t, model.ModerationPending, res.Moderation.Status)
	assert.Equal(t, "looking", res.Moderation.Comments)
	assert.Equal(t, f.mod1.UserID, res.Moderation.ModeratorID)
	assert.False(t, res.Moderation.ReviewedAt.IsZero())
	assert.Equal(t, model.PaperStatusSubmitted, res.PaperStatus)
	assert.Equal(t, paper.Version+1, res.PaperVersion)

	stored := f.loadPaper(t, paper.ID)
	assert.Equal(t, model.PaperStatusSubmitted, stored.Status)
	assert.Equal(t, paper.Version+1, stored.Version)
}

func TestClaimPaper_WithApprovedStatusApprovesPaper(t *testing.T) {
	f := newFixture(t)
	paper, _ := f.submittedPaper(t, 1)

	res, err := f.moderation.ClaimPaper(f.ctx, f.mod1, paper.ID, dto.ClaimRequest{Status: model.ModerationApproved})
	require.NoError(t, err)
	assert.Equal(t, model.PaperStatusApproved, res.PaperStatus)
}

func TestClaimPaper_Errors(t *testing.T) {
	f := newFixture(t)
	submitted, _ := f.submittedPaper(t, 1)
	draft, _ := f.draftPaper(t, 1)

	tests := []struct {
		name    string
		actor   Actor
		paperID uint
		wantErr error
	}{
		{name: "instructor cannot claim", actor: f.instructor, paperID: submitted.ID, wantErr: ErrForbidden},
		{name: "admin cannot claim", actor: f.admin, paperID: submitted.ID, wantErr: ErrForbidden},
		{name: "missing paper", actor: f.mod1, paperID: 9999, wantErr: ErrNotFound},
		{name: "draft paper", actor: f.mod1, paperID: draft.ID, wantErr: ErrInvalidPaperState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := f.auditCount(t, "")
			_, err := f.moderation.ClaimPaper(f.ctx, tt.actor, tt.paperID, dto.ClaimRequest{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, f.auditCount(t, ""), "failed claims must not write audit entries")
		})
	}
}

func TestClaimPaper_DraftReportsExpectedStates(t *testing.T) {
	f := newFixture(t)
	draft, _ := f.draftPaper(t, 1)

	_, err := f.moderation.ClaimPaper(f.ctx, f.mod1, draft.ID, dto.ClaimRequest{})
	var stateErr *InvalidPaperStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, model.PaperStatusDraft, stateErr.Actual)
	assert.Equal(t, []model.PaperStatus{model.PaperStatusSubmitted}, stateErr.Expected)
}

func TestClaimPaper_RejectedOrApprovedPaperIsNotClaimable(t *testing.T) {
	f := newFixture(t)
	paper, _ := f.submittedPaper(t, 1)

	res, err := f.moderation.ClaimPaper(f.ctx, f.mod1, paper.ID, dto.ClaimRequest{Status: model.ModerationApproved})
	require.NoError(t, err)
	require.Equal(t, model.PaperStatusApproved, res.PaperStatus)

	_, err = f.moderation.ClaimPaper(f.ctx, f.mod2, paper.ID, dto.ClaimRequest{})
	assert.ErrorIs(t, err, ErrInvalidPaperState)
}

func TestClaimPaper_DuplicateClaim(t *testing.T) {
	f := newFixture(t)
	paper, _ := f.submittedPaper(t, 1)

	_, err := f.moderation.ClaimPaper(f.ctx, f.mod1, paper.ID, dto.ClaimRequest{})
	require.NoError(t, err)
	versionAfterFirst := f.loadPaper(t, paper.ID).Version
	auditsAfterFirst := f.auditCount(t, model.ActionClaimPaper)

	_, err = f.moderation.ClaimPaper(f.ctx, f.mod1, paper.ID, dto.ClaimRequest{})
	assert.ErrorIs(t, err, ErrDuplicateClaim)

	recs, err := f.moderations.ListPaperModerationsByPaper(f.ctx, paper.ID)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, versionAfterFirst, f.loadPaper(t, paper.ID).Version)
	assert.Equal(t, auditsAfterFirst, f.auditCount(t, model.ActionClaimPaper))

	// A different moderator may still claim.
	_, err = f.moderation.ClaimPaper(f.ctx, f.mod2, paper.ID, dto.ClaimRequest{})
	assert.NoError(t, err)
}

func TestPaperModerationIndexRejectsDuplicateRows(t *testing.T) {
	f := newFixture(t)
	paper, _ := f.submittedPaper(t, 1)

	rec := model.PaperModeration{PaperID: paper.ID, ModeratorID: f.mod1.UserID, Status: model.ModerationPending}
	require.NoError(t, f.moderations.CreatePaperModeration(f.ctx, &rec))

	dup := model.PaperModeration{PaperID: paper.ID, ModeratorID: f.mod1.UserID, Status: model.ModerationPending}
	err := f.moderations.CreatePaperModeration(f.ctx, &dup)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
}

func TestModerationScenario_RejectionDominates(t *testing.T) {
	f := newFixture(t)
	paper, _ := f.submittedPaper(t, 1)

	c1, err := f.moderation.ClaimPaper(f.ctx, f.mod1, paper.ID, dto.ClaimRequest{})
	require.NoError(t, err)
	c2, err := f.moderation.ClaimPaper(f.ctx, f.mod2, paper.ID, dto.ClaimRequest{})
	require.NoError(t, err)

	res, err := f.moderation.ApprovePaperModeration(f.ctx, f.mod1, c1.Moderation.ID, "fine")
	require.NoError(t, err)
	assert.Equal(t, model.PaperStatusApproved, res.PaperStatus)
	assert.Equal(t, model.ModerationApproved, res.Moderation.Status)

	res, err = f.moderation.RejectPaperModeration(f.ctx, f.mod2, c2.Moderation.ID, "typos")
	require.NoError(t, err)
	assert.Equal(t, model.PaperStatusRejected, res.PaperStatus)

	// Re-approving the first record does not lift the rejection.
	res, err = f.moderation.ApprovePaperModeration(f.ctx, f.mod1, c1.Moderation.ID, "still fine")
	require.NoError(t, err)
	assert.Equal(t, model.PaperStatusRejected, res.PaperStatus)

	// Flipping the rejecting record to approved leaves only approvals.
	res, err = f.moderation.ApprovePaperModeration(f.ctx, f.mod2, c2.Moderation.ID, "fixed")
	require.NoError(t, err)
	assert.Equal(t, model.PaperStatusApproved, res.PaperStatus)
	assert.Equal(t, model.PaperStatusApproved, f.loadPaper(t, paper.ID).Status)
}

func TestModerationScenario_QuestionRejectionRejectsPaper(t *testing.T) {
	f := newFixture(t)
	paper, questionIDs := f.submittedPaper(t, 2)

	pc, err := f.moderation.ClaimPaper(f.ctx, f.mod1, paper.ID, dto.ClaimRequest{})
	require.NoError(t, err)
	res, err := f.moderation.ApprovePaperModeration(f.ctx, f.mod1, pc.Moderation.ID, "")
	require.NoError(t, err)
	require.Equal(t, model.PaperStatusApproved, res.PaperStatus)

	// Question claims stay open on an approved paper.
	qc, err := f.moderation.ClaimQuestion(f.ctx, f.mod2, paper.ID, questionIDs[1], dto.ClaimRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.PaperStatusApproved, qc.PaperStatus)
	assert.Equal(t, questionIDs[1], qc.Moderation.QuestionID)

	qr, err := f.moderation.RejectQuestionModeration(f.ctx, f.mod2, qc.Moderation.ID, "ambiguous wording")
	require.NoError(t, err)
	assert.Equal(t, model.PaperStatusRejected, qr.PaperStatus)
	assert.Equal(t, model.ModerationRejected, qr.Moderation.Status)

	// The paper is rejected now, so further question claims are refused.
	_, err = f.moderation.ClaimQuestion(f.ctx, f.mod1, paper.ID, questionIDs[0], dto.ClaimRequest{})
	var stateErr *InvalidPaperStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, []model.PaperStatus{model.PaperStatusSubmitted, model.PaperStatusApproved}, stateErr.Expected)
}

func TestClaimQuestion_Errors(t *testing.T) {
	f := newFixture(t)
	paper, questionIDs := f.submittedPaper(t, 1)
	draft, draftQuestions := f.draftPaper(t, 1)

	_, err := f.moderation.ClaimQuestion(f.ctx, f.mod1, paper.ID, draftQuestions[0], dto.ClaimRequest{})
	assert.ErrorIs(t, err, ErrNotFound, "question from another paper")

	_, err = f.moderation.ClaimQuestion(f.ctx, f.mod1, draft.ID, draftQuestions[0], dto.ClaimRequest{})
	assert.ErrorIs(t, err, ErrInvalidPaperState)

	_, err = f.moderation.ClaimQuestion(f.ctx, f.instructor, paper.ID, questionIDs[0], dto.ClaimRequest{})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.moderation.ClaimQuestion(f.ctx, f.mod1, paper.ID, questionIDs[0], dto.ClaimRequest{})
	require.NoError(t, err)
	_, err = f.moderation.ClaimQuestion(f.ctx, f.mod1, paper.ID, questionIDs[0], dto.ClaimRequest{})
	assert.ErrorIs(t, err, ErrDuplicateClaim)
}

func TestReview_OwnershipAndAdmin(t *testing.T) {
	f := newFixture(t)
	paper, _ := f.submittedPaper(t, 1)

	claim, err := f.moderation.ClaimPaper(f.ctx, f.mod1, paper.ID, dto.ClaimRequest{})
	require.NoError(t, err)

	_, err = f.moderation.ApprovePaperModeration(f.ctx, f.mod2, claim.Moderation.ID, "")
	assert.ErrorIs(t, err, ErrForbidden, "moderators review only their own records")

	_, err = f.moderation.RejectPaperModeration(f.ctx, f.instructor, claim.Moderation.ID, "")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.moderation.ApprovePaperModeration(f.ctx, f.mod1, 9999, "")
	assert.ErrorIs(t, err, ErrNotFound)

	res, err := f.moderation.RejectPaperModeration(f.ctx, f.admin, claim.Moderation.ID, "admin override")
	require.NoError(t, err)
	assert.Equal(t, model.PaperStatusRejected, res.PaperStatus)
}

func TestAudit_ExactlyOneEntryPerMutation(t *testing.T) {
	f := newFixture(t)
	paper, questionIDs := f.submittedPaper(t, 1)
	start := f.auditCount(t, "")

	pc, err := f.moderation.ClaimPaper(f.ctx, f.mod1, paper.ID, dto.ClaimRequest{})
	require.NoError(t, err)
	qc, err := f.moderation.ClaimQuestion(f.ctx, f.mod1, paper.ID, questionIDs[0], dto.ClaimRequest{})
	require.NoError(t, err)
	_, err = f.moderation.ApprovePaperModeration(f.ctx, f.mod1, pc.Moderation.ID, "")
	require.NoError(t, err)
	_, err = f.moderation.ApproveQuestionModeration(f.ctx, f.mod1, qc.Moderation.ID, "")
	require.NoError(t, err)
	_, err = f.moderation.RejectQuestionModeration(f.ctx, f.mod1, qc.Moderation.ID, "")
	require.NoError(t, err)
	_, err = f.moderation.RejectPaperModeration(f.ctx, f.mod1, pc.Moderation.ID, "")
	require.NoError(t, err)

	assert.Equal(t, start+6, f.auditCount(t, ""))
	for _, action := range []string{
		model.ActionClaimPaper,
		model.ActionClaimQuestion,
		model.ActionPaperApproved,
		model.ActionQuestionApproved,
		model.ActionQuestionRejected,
		model.ActionPaperRejected,
	} {
		assert.Equal(t, int64(1), f.auditCount(t, action), action)
	}

	entries, err := f.audit.ListByUser(f.ctx, f.admin, f.mod1.UserID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 6)
	assert.Equal(t, model.ActionPaperRejected, entries[0].Action, "newest first")
	assert.EqualValues(t, paper.ID, entries[0].Details["paper_id"])
}

type failingReconciler struct{}

func (failingReconciler) Reconcile(context.Context, *gorm.DB, uint) (*model.QuestionPaper, error) {
	return nil, errors.New("status write failed")
}

func TestClaimPaper_RollsBackOnReconcileFailure(t *testing.T) {
	f := newFixture(t)
	paper, _ := f.submittedPaper(t, 1)
	auditsBefore := f.auditCount(t, "")

	svc := *f.moderation
	svc.reconciler = failingReconciler{}

	_, err := svc.ClaimPaper(f.ctx, f.mod1, paper.ID, dto.ClaimRequest{})
	var txErr *TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.Equal(t, "claim paper", txErr.Op)
	assert.EqualError(t, errors.Unwrap(err), "status write failed")

	recs, err := f.moderations.ListPaperModerationsByPaper(f.ctx, paper.ID)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, auditsBefore, f.auditCount(t, ""))

	stored := f.loadPaper(t, paper.ID)
	assert.Equal(t, paper.Version, stored.Version)
	assert.Equal(t, model.PaperStatusSubmitted, stored.Status)
}

func TestReview_RollsBackOnReconcileFailure(t *testing.T) {
	f := newFixture(t)
	paper, _ := f.submittedPaper(t, 1)
	claim, err := f.moderation.ClaimPaper(f.ctx, f.mod1, paper.ID, dto.ClaimRequest{})
	require.NoError(t, err)
	auditsBefore := f.auditCount(t, "")

	svc := *f.moderation
	svc.reconciler = failingReconciler{}
	_, err = svc.RejectPaperModeration(f.ctx, f.mod1, claim.Moderation.ID, "nope")
	require.Error(t, err)

	rec, err := f.moderations.FindPaperModerationByID(f.ctx, claim.Moderation.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ModerationPending, rec.Status, "record update must be rolled back")
	assert.Equal(t, auditsBefore, f.auditCount(t, ""))
	assert.Equal(t, model.PaperStatusSubmitted, f.loadPaper(t, paper.ID).Status)
}

func TestListings(t *testing.T) {
	f := newFixture(t)
	paper, questionIDs := f.submittedPaper(t, 2)

	_, err := f.moderation.ClaimPaper(f.ctx, f.mod1, paper.ID, dto.ClaimRequest{})
	require.NoError(t, err)
	_, err = f.moderation.ClaimQuestion(f.ctx, f.mod1, paper.ID, questionIDs[0], dto.ClaimRequest{})
	require.NoError(t, err)
	_, err = f.moderation.ClaimQuestion(f.ctx, f.mod2, paper.ID, questionIDs[1], dto.ClaimRequest{})
	require.NoError(t, err)

	byPaper, err := f.moderation.ListPaperModerations(f.ctx, f.instructor, paper.ID)
	require.NoError(t, err)
	require.Len(t, byPaper, 1)
	assert.Equal(t, "mod1", byPaper[0].ModeratorName)
	assert.Equal(t, "Midterm", byPaper[0].PaperTitle)

	_, err = f.moderation.ListPaperModerations(f.ctx, f.otherInstructor, paper.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	qByPaper, err := f.moderation.ListQuestionModerationsByPaper(f.ctx, f.mod2, paper.ID)
	require.NoError(t, err)
	assert.Len(t, qByPaper, 2)

	qByQuestion, err := f.moderation.ListQuestionModerationsByQuestion(f.ctx, f.admin, questionIDs[1])
	require.NoError(t, err)
	require.Len(t, qByQuestion, 1)
	assert.Equal(t, f.mod2.UserID, qByQuestion[0].ModeratorID)

	mine, err := f.moderation.ListMine(f.ctx, f.mod1)
	require.NoError(t, err)
	assert.Len(t, mine.Papers, 1)
	assert.Len(t, mine.Questions, 1)

	_, err = f.moderation.ListMine(f.ctx, f.admin)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListQuestionModerationsByQuestion_ScopedToPaperOwner(t *testing.T) {
	f := newFixture(t)

	// Written by the admin, used in the instructor's paper.
	course := f.createCourse(t, f.instructor, "ALG101")
	q := f.createQuestion(t, f.admin, course.ID, "Prove the lemma")
	paper, err := f.paperSvc.CreatePaper(f.ctx, f.instructor, dto.CreatePaperRequest{CourseID: course.ID, Title: "Final", ExamType: "final"})
	require.NoError(t, err)
	_, err = f.paperQSvc.AddQuestion(f.ctx, f.instructor, paper.ID, dto.AddPaperQuestionRequest{QuestionID: q.ID})
	require.NoError(t, err)
	_, err = f.paperSvc.SubmitPaper(f.ctx, f.instructor, paper.ID)
	require.NoError(t, err)
	_, err = f.moderation.ClaimQuestion(f.ctx, f.mod1, paper.ID, q.ID, dto.ClaimRequest{})
	require.NoError(t, err)

	recs, err := f.moderation.ListQuestionModerationsByQuestion(f.ctx, f.instructor, q.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, paper.ID, recs[0].PaperID)

	// Written by otherInstructor, used only in the admin's paper.
	otherCourse := f.createCourse(t, f.otherInstructor, "GEO201")
	q2 := f.createQuestion(t, f.otherInstructor, otherCourse.ID, "Name the rift")
	adminPaper, err := f.paperSvc.CreatePaper(f.ctx, f.admin, dto.CreatePaperRequest{CourseID: otherCourse.ID, Title: "Quiz", ExamType: "quiz"})
	require.NoError(t, err)
	_, err = f.paperQSvc.AddQuestion(f.ctx, f.admin, adminPaper.ID, dto.AddPaperQuestionRequest{QuestionID: q2.ID})
	require.NoError(t, err)
	_, err = f.paperSvc.SubmitPaper(f.ctx, f.admin, adminPaper.ID)
	require.NoError(t, err)
	_, err = f.moderation.ClaimQuestion(f.ctx, f.mod1, adminPaper.ID, q2.ID, dto.ClaimRequest{})
	require.NoError(t, err)

	recs, err = f.moderation.ListQuestionModerationsByQuestion(f.ctx, f.otherInstructor, q2.ID)
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = f.moderation.ListQuestionModerationsByQuestion(f.ctx, f.admin, q2.ID)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	recs, err = f.moderation.ListQuestionModerationsByQuestion(f.ctx, f.mod2, q2.ID)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	_, err = f.moderation.ListQuestionModerationsByQuestion(f.ctx, f.instructor, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

// staleModerationRepo never sees an existing claim, like a concurrent
// transaction whose insert has not committed yet.
type staleModerationRepo struct {
	repository.ModerationRepository
}

func (r staleModerationRepo) WithTx(tx *gorm.DB) repository.ModerationRepository {
	return staleModerationRepo{r.ModerationRepository.WithTx(tx)}
}

func (staleModerationRepo) PaperModerationExists(context.Context, uint, uint) (bool, error) {
	return false, nil
}

func (staleModerationRepo) QuestionModerationExists(context.Context, uint, uint) (bool, error) {
	return false, nil
}

func TestClaim_UniqueIndexFallbackReportsDuplicate(t *testing.T) {
	f := newFixture(t)
	paper, questionIDs := f.submittedPaper(t, 1)

	_, err := f.moderation.ClaimPaper(f.ctx, f.mod1, paper.ID, dto.ClaimRequest{})
	require.NoError(t, err)
	_, err = f.moderation.ClaimQuestion(f.ctx, f.mod1, paper.ID, questionIDs[0], dto.ClaimRequest{})
	require.NoError(t, err)
	auditsBefore := f.auditCount(t, "")
	versionBefore := f.loadPaper(t, paper.ID).Version

	svc := *f.moderation
	svc.moderationRepo = staleModerationRepo{f.moderations}

	_, err = svc.ClaimPaper(f.ctx, f.mod1, paper.ID, dto.ClaimRequest{})
	assert.ErrorIs(t, err, ErrDuplicateClaim)
	_, err = svc.ClaimQuestion(f.ctx, f.mod1, paper.ID, questionIDs[0], dto.ClaimRequest{})
	assert.ErrorIs(t, err, ErrDuplicateClaim)

	assert.Equal(t, auditsBefore, f.auditCount(t, ""))
	assert.Equal(t, versionBefore, f.loadPaper(t, paper.ID).Version)

	recs, err := f.moderations.ListPaperModerationsByPaper(f.ctx, paper.ID)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
