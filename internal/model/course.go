package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course is matched to grades by name: a grade belongs to the course whose
// Name equals the grade's Subject.
type Course struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Department  string    `gorm:"size:100" json:"department"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Course) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
