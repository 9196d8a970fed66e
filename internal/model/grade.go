package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultMaxScore = 10.0

type Grade struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	StudentID    string    `gorm:"size:36;not null;index" json:"student_id"`
	Subject      string    `gorm:"size:50;not null;index" json:"subject"`
	Score        float64   `gorm:"not null" json:"score"`
	MaxScore     float64   `gorm:"not null;default:10" json:"max_score"`
	GradeType    string    `gorm:"size:20;not null;default:regular" json:"grade_type"`
	Semester     string    `gorm:"size:10;not null" json:"semester"`
	AcademicYear string    `gorm:"size:10;not null" json:"academic_year"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (g *Grade) BeforeCreate(_ *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.MaxScore <= 0 {
		g.MaxScore = DefaultMaxScore
	}
	return nil
}
