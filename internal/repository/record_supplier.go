package repository

import (
	"context"

	"edubot/internal/model"
)

// RecordSupplier adapts the gorm repositories to the denormalized records
// the knowledge index is built from.
type RecordSupplier struct {
	students *StudentRepository
	courses  *CourseRepository
}

func NewRecordSupplier(students *StudentRepository, courses *CourseRepository) *RecordSupplier {
	return &RecordSupplier{students: students, courses: courses}
}

func (s *RecordSupplier) ListStudentsWithGrades(ctx context.Context) ([]model.StudentRecord, error) {
	students, err := s.students.ListWithGrades(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]model.StudentRecord, 0, len(students))
	for i := range students {
		records = append(records, toStudentRecord(students[i]))
	}
	return records, nil
}

func (s *RecordSupplier) ListCoursesWithStatistics(ctx context.Context) ([]model.CourseRecord, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.courses.StatisticsBySubject(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]model.CourseRecord, 0, len(courses))
	for _, c := range courses {
		records = append(records, toCourseRecord(c, stats))
	}
	return records, nil
}

func toStudentRecord(s model.Student) model.StudentRecord {
	grades := make([]model.GradeRecord, 0, len(s.Grades))
	for _, g := range s.Grades {
		grades = append(grades, model.GradeRecord{
			Subject:  g.Subject,
			Score:    g.Score,
			Semester: g.Semester,
		})
	}
	return model.StudentRecord{
		ID:             s.ID,
		Name:           s.Name,
		Email:          s.Email,
		EnrollmentDate: s.EnrollmentDate,
		Grades:         grades,
	}
}

func toCourseRecord(c model.Course, stats map[string]SubjectStatistics) model.CourseRecord {
	record := model.CourseRecord{
		ID:          c.ID,
		Name:        c.Name,
		Department:  c.Department,
		Description: c.Description,
	}
	if row, ok := stats[c.Name]; ok {
		record.Statistics = &model.CourseStatistics{
			AvgScore:     row.AvgScore,
			StudentCount: row.StudentCount,
			PassRate:     row.PassRate,
		}
	}
	return record
}
