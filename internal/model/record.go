package model

import "time"

// StudentRecord is a student denormalized with all of its grades, the shape
// the knowledge index is built from.
type StudentRecord struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	EnrollmentDate time.Time     `json:"enrollment_date"`
	Grades         []GradeRecord `json:"grades"`
}

type GradeRecord struct {
	Subject  string  `json:"subject"`
	Score    float64 `json:"score"`
	Semester string  `json:"semester"`
}

// CourseRecord is a course with statistics aggregated over its grades.
// Statistics is nil when no grade references the course.
type CourseRecord struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Department  string            `json:"department"`
	Description string            `json:"description"`
	Statistics  *CourseStatistics `json:"statistics,omitempty"`
}

type CourseStatistics struct {
	AvgScore     float64 `json:"avg_score"`
	StudentCount int     `json:"student_count"`
	PassRate     float64 `json:"pass_rate"`
}
