package model

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions written alongside moderation ledger changes.
const (
	ActionClaimPaper       = "CLAIM_PAPER"
	ActionPaperApproved    = "PAPER_APPROVED"
	ActionPaperRejected    = "PAPER_REJECTED"
	ActionClaimQuestion    = "CLAIM_QUESTION"
	ActionQuestionApproved = "QUESTION_APPROVED"
	ActionQuestionRejected = "QUESTION_REJECTED"

	ActionSubmitPaper         = "SUBMIT_PAPER"
	ActionAddQuestionToPaper  = "ADD_QUESTION_TO_PAPER"
	ActionRemovePaperQuestion = "REMOVE_QUESTION_FROM_PAPER"

	ActionActivateUser   = "ACTIVATE_USER"
	ActionDeactivateUser = "DEACTIVATE_USER"
)

type AuditLog struct {
	ID        uint              `gorm:"primarykey" json:"id"`
	UserID    uint              `json:"user_id" gorm:"not null;index"`
	User      *User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Action    string            `json:"action" gorm:"type:varchar(64);not null;index"`
	Details   datatypes.JSONMap `json:"details"`
	CreatedAt time.Time         `json:"created_at" gorm:"index"`
}
