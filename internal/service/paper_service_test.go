package service

import (
	"testing"

	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaper_RequiresCourseOwnership(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t, f.instructor, "MA101")

	_, err := f.paperSvc.CreatePaper(f.ctx, f.otherInstructor, dto.CreatePaperRequest{CourseID: course.ID, Title: "Quiz"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.paperSvc.CreatePaper(f.ctx, f.mod1, dto.CreatePaperRequest{CourseID: course.ID, Title: "Quiz"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.paperSvc.CreatePaper(f.ctx, f.instructor, dto.CreatePaperRequest{CourseID: 9999, Title: "Quiz"})
	assert.ErrorIs(t, err, ErrNotFound)

	paper, err := f.paperSvc.CreatePaper(f.ctx, f.instructor, dto.CreatePaperRequest{CourseID: course.ID, Title: "Quiz"})
	require.NoError(t, err)
	assert.Equal(t, model.PaperStatusDraft, paper.Status)
	assert.Equal(t, 1, paper.Version)
	assert.Equal(t, "MA101", paper.CourseCode)
	assert.Equal(t, "lecturer", paper.InstructorName)
}

func TestSubmitPaper(t *testing.T) {
	f := newFixture(t)
	draft, _ := f.draftPaper(t, 1)

	_, err := f.paperSvc.SubmitPaper(f.ctx, f.otherInstructor, draft.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	submitted, err := f.paperSvc.SubmitPaper(f.ctx, f.instructor, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaperStatusSubmitted, submitted.Status)
	assert.Greater(t, submitted.Version, draft.Version)
	assert.Equal(t, int64(1), f.auditCount(t, model.ActionSubmitPaper))

	_, err = f.paperSvc.SubmitPaper(f.ctx, f.instructor, draft.ID)
	var stateErr *InvalidPaperStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, []model.PaperStatus{model.PaperStatusDraft}, stateErr.Expected)
}

func TestUpdateAndDeletePaper_OnlyDrafts(t *testing.T) {
	f := newFixture(t)
	draft, _ := f.draftPaper(t, 0)

	title := "Final exam"
	updated, err := f.paperSvc.UpdatePaper(f.ctx, f.instructor, draft.ID, dto.UpdatePaperRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Final exam", updated.Title)
	assert.Equal(t, "midterm", updated.ExamType, "absent fields are untouched")
	assert.Equal(t, draft.Version+1, updated.Version)

	_, err = f.paperSvc.UpdatePaper(f.ctx, f.otherInstructor, draft.ID, dto.UpdatePaperRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.paperSvc.SubmitPaper(f.ctx, f.instructor, draft.ID)
	require.NoError(t, err)

	_, err = f.paperSvc.UpdatePaper(f.ctx, f.instructor, draft.ID, dto.UpdatePaperRequest{Title: &title})
	assert.ErrorIs(t, err, ErrInvalidPaperState)
	assert.ErrorIs(t, f.paperSvc.DeletePaper(f.ctx, f.instructor, draft.ID), ErrInvalidPaperState)

	other, _ := f.draftPaper(t, 1)
	require.NoError(t, f.paperSvc.DeletePaper(f.ctx, f.instructor, other.ID))
	_, err = f.paperSvc.GetPaper(f.ctx, f.instructor, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPapers_FiltersByRole(t *testing.T) {
	f := newFixture(t)
	f.draftPaper(t, 0)
	f.draftPaper(t, 0)

	course := f.createCourse(t, f.otherInstructor, "PH200")
	_, err := f.paperSvc.CreatePaper(f.ctx, f.otherInstructor, dto.CreatePaperRequest{CourseID: course.ID, Title: "Other"})
	require.NoError(t, err)

	mine, err := f.paperSvc.ListPapers(f.ctx, f.instructor, 0, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := f.paperSvc.ListPapers(f.ctx, f.mod1, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := f.paperSvc.ListPapers(f.ctx, f.admin, 1, 1)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestPaperQuestions_AddListRemove(t *testing.T) {
	f := newFixture(t)
	draft, questionIDs := f.draftPaper(t, 3)

	pqs, err := f.paperQSvc.ListQuestions(f.ctx, f.instructor, draft.ID)
	require.NoError(t, err)
	require.Len(t, pqs, 3)
	for i, pq := range pqs {
		assert.Equal(t, i+1, pq.Sequence)
		assert.Equal(t, questionIDs[i], pq.QuestionID)
		assert.Equal(t, 10.0, pq.Marks, "marks default to the question's marks")
	}

	_, err = f.paperQSvc.AddQuestion(f.ctx, f.instructor, draft.ID, dto.AddPaperQuestionRequest{QuestionID: questionIDs[0]})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	foreignCourse := f.createCourse(t, f.instructor, "EE300")
	foreign := f.createQuestion(t, f.instructor, foreignCourse.ID, "Unrelated")
	_, err = f.paperQSvc.AddQuestion(f.ctx, f.instructor, draft.ID, dto.AddPaperQuestionRequest{QuestionID: foreign.ID})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.paperQSvc.AddQuestion(f.ctx, f.instructor, draft.ID, dto.AddPaperQuestionRequest{QuestionID: 9999})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.paperQSvc.RemoveQuestion(f.ctx, f.instructor, pqs[1].ID))
	pqs, err = f.paperQSvc.ListQuestions(f.ctx, f.instructor, draft.ID)
	require.NoError(t, err)
	require.Len(t, pqs, 2)
	assert.Equal(t, []int{1, 2}, []int{pqs[0].Sequence, pqs[1].Sequence})
	assert.Equal(t, questionIDs[2], pqs[1].QuestionID)

	assert.Equal(t, int64(3), f.auditCount(t, model.ActionAddQuestionToPaper))
	assert.Equal(t, int64(1), f.auditCount(t, model.ActionRemovePaperQuestion))

	assert.ErrorIs(t, f.paperQSvc.RemoveQuestion(f.ctx, f.instructor, 9999), ErrNotFound)
	assert.ErrorIs(t, f.paperQSvc.RemoveQuestion(f.ctx, f.otherInstructor, pqs[0].ID), ErrForbidden)
}

func TestPaperQuestions_LockedAfterSubmit(t *testing.T) {
	f := newFixture(t)
	paper, _ := f.submittedPaper(t, 1)
	q := f.createQuestion(t, f.instructor, paper.CourseID, "Late addition")

	_, err := f.paperQSvc.AddQuestion(f.ctx, f.instructor, paper.ID, dto.AddPaperQuestionRequest{QuestionID: q.ID})
	assert.ErrorIs(t, err, ErrInvalidPaperState)

	_, err = f.paperQSvc.AddQuestion(f.ctx, f.otherInstructor, paper.ID, dto.AddPaperQuestionRequest{QuestionID: q.ID})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.paperQSvc.AddQuestion(f.ctx, f.admin, paper.ID, dto.AddPaperQuestionRequest{QuestionID: q.ID})
	assert.ErrorIs(t, err, ErrInvalidPaperState)
}
