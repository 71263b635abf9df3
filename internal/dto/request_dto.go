package dto

import "github.com/lshigami/qams/internal/model"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=instructor moderator"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateCourseRequest struct {
	Code  string `json:"code" binding:"required"`
	Title string `json:"title" binding:"required"`
	L     int    `json:"l" binding:"min=0"`
	T     int    `json:"t" binding:"min=0"`
	P     int    `json:"p" binding:"min=0"`
}

type CreateQuestionRequest struct {
	CourseID     uint    `json:"course_id" binding:"required"`
	Content      string  `json:"content" binding:"required"`
	QuestionType string  `json:"question_type" binding:"required,oneof=subjective mcq"`
	Marks        float64 `json:"marks" binding:"min=0"`
}

type CreatePaperRequest struct {
	CourseID     uint    `json:"course_id" binding:"required"`
	Title        string  `json:"title" binding:"required"`
	ExamType     string  `json:"exam_type"`
	Semester     string  `json:"semester"`
	AcademicYear string  `json:"academic_year"`
	FullMarks    float64 `json:"full_marks" binding:"min=0"`
	Duration     int     `json:"duration" binding:"min=0"`
}

// UpdatePaperRequest only touches fields that are present. Status is not
// editable here: it moves through submit and moderation.
type UpdatePaperRequest struct {
	Title        *string  `json:"title" binding:"omitempty,min=1"`
	ExamType     *string  `json:"exam_type"`
	Semester     *string  `json:"semester"`
	AcademicYear *string  `json:"academic_year"`
	FullMarks    *float64 `json:"full_marks" binding:"omitempty,min=0"`
	Duration     *int     `json:"duration" binding:"omitempty,min=0"`
}

type AddPaperQuestionRequest struct {
	QuestionID uint    `json:"question_id" binding:"required"`
	Sequence   int     `json:"sequence" binding:"min=0"` // 0 appends at the end
	Marks      float64 `json:"marks" binding:"min=0"`
	Section    string  `json:"section"`
}

// ClaimRequest opens a moderation record. Status defaults to pending.
type ClaimRequest struct {
	Comments string                 `json:"comments"`
	Status   model.ModerationStatus `json:"status" binding:"omitempty,oneof=pending approved rejected"`
}

type ReviewRequest struct {
	Comments string `json:"comments"`
}
