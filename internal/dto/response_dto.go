package dto

import (
	"time"

	"github.com/lshigami/qams/internal/model"
)

type ErrorResponse struct {
	Message  string   `json:"message"`
	Details  []string `json:"details,omitempty"`
	Expected []string `json:"expected,omitempty"`
}

type UserResponse struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      model.Role       `json:"role"`
	Status    model.UserStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type CourseResponse struct {
	ID            uint      `json:"id"`
	Code          string    `json:"code"`
	Title         string    `json:"title"`
	L             int       `json:"l"`
	T             int       `json:"t"`
	P             int       `json:"p"`
	CreatedBy     uint      `json:"created_by"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type QuestionResponse struct {
	ID           uint      `json:"id"`
	CourseID     uint      `json:"course_id"`
	CreatedBy    uint      `json:"created_by"`
	Content      string    `json:"content"`
	QuestionType string    `json:"question_type"`
	Marks        float64   `json:"marks"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PaperResponse struct {
	ID             uint              `json:"id"`
	CourseID       uint              `json:"course_id"`
	CourseCode     string            `json:"course_code,omitempty"`
	CourseTitle    string            `json:"course_title,omitempty"`
	InstructorID   uint              `json:"instructor_id"`
	InstructorName string            `json:"instructor_name,omitempty"`
	Title          string            `json:"title"`
	ExamType       string            `json:"exam_type"`
	Semester       string            `json:"semester"`
	AcademicYear   string            `json:"academic_year"`
	Status         model.PaperStatus `json:"status"`
	Version        int               `json:"version"`
	FullMarks      float64           `json:"full_marks"`
	Duration       int               `json:"duration"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type PaperQuestionResponse struct {
	ID           uint    `json:"id"`
	PaperID      uint    `json:"paper_id"`
	QuestionID   uint    `json:"question_id"`
	Sequence     int     `json:"sequence"`
	Marks        float64 `json:"marks"`
	Section      string  `json:"section"`
	Content      string  `json:"content,omitempty"`
	QuestionType string  `json:"question_type,omitempty"`
}

type AuditLogResponse struct {
	ID        uint                   `json:"id"`
	UserID    uint                   `json:"user_id"`
	UserName  string                 `json:"user_name,omitempty"`
	UserRole  model.Role             `json:"user_role,omitempty"`
	Action    string                 `json:"action"`
	Details   map[string]interface{} `json:"details"`
	CreatedAt time.Time              `json:"created_at"`
}

type ListResponse[T any] struct {
	Total int `json:"total"`
	Data  []T `json:"data"`
}

func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Total: len(items), Data: items}
}
