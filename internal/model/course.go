package model

import "time"

type Course struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Code      string    `json:"code" gorm:"not null;uniqueIndex"`
	Title     string    `json:"title" gorm:"not null"`
	L         int       `json:"l"`
	T         int       `json:"t"`
	P         int       `json:"p"`
	CreatedBy uint      `json:"created_by" gorm:"not null;index"`
	Creator   *User     `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
