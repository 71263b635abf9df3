package model

type PaperQuestion struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	PaperID    uint           `json:"paper_id" gorm:"not null;uniqueIndex:idx_paper_question"`
	QuestionID uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_paper_question"`
	Question   *Question      `json:"question,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	Paper      *QuestionPaper `json:"-" gorm:"foreignKey:PaperID;constraint:OnDelete:CASCADE"`
	Sequence   int            `json:"sequence" gorm:"not null"`
	Marks      float64        `json:"marks"`
	Section    string         `json:"section"`
}
