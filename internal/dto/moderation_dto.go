package dto

import (
	"time"

	"github.com/lshigami/qams/internal/model"
)

type PaperModerationResponse struct {
	ID            uint                   `json:"id"`
	PaperID       uint                   `json:"paper_id"`
	PaperTitle    string                 `json:"paper_title,omitempty"`
	ModeratorID   uint                   `json:"moderator_id"`
	ModeratorName string                 `json:"moderator_name,omitempty"`
	Status        model.ModerationStatus `json:"status"`
	Comments      string                 `json:"comments"`
	ReviewedAt    time.Time              `json:"reviewed_at"`
}

type QuestionModerationResponse struct {
	ID              uint                   `json:"id"`
	PaperID         uint                   `json:"paper_id"`
	PaperTitle      string                 `json:"paper_title,omitempty"`
	QuestionID      uint                   `json:"question_id"`
	QuestionContent string                 `json:"question_content,omitempty"`
	QuestionType    string                 `json:"question_type,omitempty"`
	ModeratorID     uint                   `json:"moderator_id"`
	ModeratorName   string                 `json:"moderator_name,omitempty"`
	Status          model.ModerationStatus `json:"status"`
	Comments        string                 `json:"comments"`
	ReviewedAt      time.Time              `json:"reviewed_at"`
}

// PaperModerationResult is returned by every paper-level ledger mutation,
// together with the reconciled paper state it produced.
type PaperModerationResult struct {
	Moderation   PaperModerationResponse `json:"moderation"`
	PaperStatus  model.PaperStatus       `json:"paper_status"`
	PaperVersion int                     `json:"paper_version"`
}

type QuestionModerationResult struct {
	Moderation   QuestionModerationResponse `json:"moderation"`
	PaperStatus  model.PaperStatus          `json:"paper_status"`
	PaperVersion int                        `json:"paper_version"`
}

type MyModerationsResponse struct {
	Papers    []PaperModerationResponse    `json:"papers"`
	Questions []QuestionModerationResponse `json:"questions"`
}
