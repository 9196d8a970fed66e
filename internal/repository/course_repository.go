package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"edubot/internal/model"
)

// passThreshold is the share of a grade's max score needed to pass.
const passThreshold = 0.5

type CourseRepository struct {
	db *gorm.DB
}

// SubjectStatistics is one row of the per-subject grade aggregate.
type SubjectStatistics struct {
	Subject      string
	AvgScore     float64
	StudentCount int
	PassRate     float64
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("list courses failed: %w", err)
	}
	return courses, nil
}

// StatisticsBySubject aggregates grades per subject.
func (r *CourseRepository) StatisticsBySubject(ctx context.Context) (map[string]SubjectStatistics, error) {
	var rows []SubjectStatistics
	err := r.db.WithContext(ctx).
		Model(&model.Grade{}).
		Select(
			"subject, AVG(score) AS avg_score, COUNT(DISTINCT student_id) AS student_count, "+
				"AVG(CASE WHEN score >= max_score * ? THEN 1.0 ELSE 0.0 END) AS pass_rate",
			passThreshold,
		).
		Group("subject").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate grade statistics failed: %w", err)
	}

	stats := make(map[string]SubjectStatistics, len(rows))
	for _, row := range rows {
		stats[row.Subject] = row
	}
	return stats, nil
}
