package model

import "time"

type Question struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CourseID     uint      `json:"course_id" gorm:"not null;index"`
	Course       *Course   `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	CreatedBy    uint      `json:"created_by" gorm:"not null;index"`
	Content      string    `json:"content" gorm:"type:text;not null"`
	QuestionType string    `json:"question_type" gorm:"type:varchar(20);not null"` // "subjective", "mcq"
	Marks        float64   `json:"marks"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
