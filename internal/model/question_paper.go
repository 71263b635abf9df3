package model

import "time"

type QuestionPaper struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	CourseID     uint        `json:"course_id" gorm:"not null;index"`
	Course       *Course     `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	InstructorID uint        `json:"instructor_id" gorm:"not null;index"`
	Instructor   *User       `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	Title        string      `json:"title" gorm:"not null"`
	ExamType     string      `json:"exam_type"`
	Semester     string      `json:"semester"`
	AcademicYear string      `json:"academic_year"`
	Status       PaperStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	// Version is bumped on every content or status change.
	Version   int       `json:"version" gorm:"not null;default:1"`
	FullMarks float64   `json:"full_marks"`
	Duration  int       `json:"duration"` // minutes
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
