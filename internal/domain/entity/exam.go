package entity

import (
	"time"
)

// Exam представляет экзамен
type Exam struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"size:500;not null" json:"description"`
	Venue       string    `gorm:"size:200;not null" json:"venue"`
	Time        time.Time `gorm:"not null" json:"time"`
	Duration    int       `gorm:"not null" json:"duration"` // Длительность в минутах
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Exam) TableName() string {
	return "exams"
}
