package model

import "time"

// PaperModeration is a moderator's claim on a whole paper. A moderator holds at
// most one per paper; the unique index is what enforces it under concurrency.
type PaperModeration struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	PaperID     uint             `json:"paper_id" gorm:"not null;uniqueIndex:idx_paper_moderator"`
	Paper       *QuestionPaper   `json:"paper,omitempty" gorm:"foreignKey:PaperID;constraint:OnDelete:CASCADE"`
	ModeratorID uint             `json:"moderator_id" gorm:"not null;uniqueIndex:idx_paper_moderator;index"`
	Moderator   *User            `json:"moderator,omitempty" gorm:"foreignKey:ModeratorID"`
	Status      ModerationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Comments    string           `json:"comments" gorm:"type:text"`
	ReviewedAt  time.Time        `json:"reviewed_at" gorm:"index"`
}
