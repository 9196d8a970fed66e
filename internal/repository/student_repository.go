package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"edubot/internal/model"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListWithGrades returns every student with grades preloaded, both in
// insertion order so the rendered knowledge base is stable between builds.
func (r *StudentRepository) ListWithGrades(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Preload("Grades", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Order("created_at ASC, id ASC").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("list students with grades failed: %w", err)
	}
	return students, nil
}
