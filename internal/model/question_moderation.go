package model

import "time"

// QuestionModeration is a moderator's claim on one question of a paper.
// Uniqueness is per (question, moderator), not per paper.
type QuestionModeration struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	PaperID     uint             `json:"paper_id" gorm:"not null;index"`
	Paper       *QuestionPaper   `json:"paper,omitempty" gorm:"foreignKey:PaperID;constraint:OnDelete:CASCADE"`
	QuestionID  uint             `json:"question_id" gorm:"not null;uniqueIndex:idx_question_moderator"`
	Question    *Question        `json:"question,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	ModeratorID uint             `json:"moderator_id" gorm:"not null;uniqueIndex:idx_question_moderator;index"`
	Moderator   *User            `json:"moderator,omitempty" gorm:"foreignKey:ModeratorID"`
	Status      ModerationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Comments    string           `json:"comments" gorm:"type:text"`
	ReviewedAt  time.Time        `json:"reviewed_at" gorm:"index"`
}
