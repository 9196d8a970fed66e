package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	EnrollmentDate time.Time `gorm:"not null" json:"enrollment_date"`
	Grades         []Grade   `gorm:"foreignKey:StudentID" json:"grades,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (s *Student) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.EnrollmentDate.IsZero() {
		s.EnrollmentDate = time.Now().UTC()
	}
	return nil
}
