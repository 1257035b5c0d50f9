package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories"
	"github.com/eduplatform/school-service/internal/validator"
)

type gradeService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewGradeService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) GradeService {
	return &gradeService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *gradeService) Record(ctx context.Context, req CreateGradeRequest) (*models.Grade, error) {
	if errs := s.validator.Validate(&req); errs != nil {
		return nil, errs
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	grade, err := models.NewGrade(req.ID, req.StudentID, req.Subject, req.Value, date, req.TeacherID, req.Comments...)
	if err != nil {
		return nil, fmt.Errorf("failed to construct grade: %w", err)
	}

	if err := s.repo.Grade().Add(ctx, grade); err != nil {
		return nil, fmt.Errorf("failed to add grade %d: %w", grade.ID, err)
	}

	s.logger.Info("Grade recorded",
		"grade_id", grade.ID,
		"student_id", grade.StudentID,
		"subject", grade.Subject,
		"value", grade.Value)

	return grade, nil
}

func (s *gradeService) Get(ctx context.Context, id int) (*models.Grade, error) {
	grade, err := s.repo.Grade().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("grade %d: %w", id, err)
	}
	return grade, nil
}

func (s *gradeService) Remove(ctx context.Context, id int) error {
	if err := s.repo.Grade().Remove(ctx, id); err != nil {
		return fmt.Errorf("grade %d: %w", id, err)
	}
	s.logger.Info("Grade removed", "grade_id", id)
	return nil
}

func (s *gradeService) Update(ctx context.Context, gradeID, newValue int, comment string) (bool, error) {
	grade, err := s.repo.Grade().GetByID(ctx, gradeID)
	if err != nil {
		return false, fmt.Errorf("grade %d: %w", gradeID, err)
	}

	updated := grade.Update(newValue, comment)
	if updated {
		s.logger.Info("Grade updated", "grade_id", gradeID, "value", grade.Value)
	}
	return updated, nil
}

func (s *gradeService) HistoryForStudent(ctx context.Context, studentID int, subject string) ([]*models.Grade, error) {
	grades, err := s.repo.Grade().ByStudent(ctx, studentID, repositories.GradeFilters{Subject: subject})
	if err != nil {
		return nil, fmt.Errorf("failed to query grades: %w", err)
	}

	sort.SliceStable(grades, func(i, j int) bool {
		return grades[i].Date.After(grades[j].Date)
	})
	return grades, nil
}

func (s *gradeService) StatisticsByStudent(ctx context.Context, studentID int, subject string) (GradeStatistics, error) {
	grades, err := s.repo.Grade().ByStudent(ctx, studentID, repositories.GradeFilters{Subject: subject})
	if err != nil {
		return GradeStatistics{}, fmt.Errorf("failed to query grades: %w", err)
	}
	return statistics(values(grades)), nil
}

func (s *gradeService) StatisticsByClass(ctx context.Context, classID, subject string) (GradeStatistics, error) {
	studentIDs, err := s.repo.User().StudentsByClass(ctx, classID)
	if err != nil {
		return GradeStatistics{}, fmt.Errorf("failed to resolve class students: %w", err)
	}

	var all []int
	for _, studentID := range studentIDs {
		grades, err := s.repo.Grade().ByStudent(ctx, studentID, repositories.GradeFilters{Subject: subject})
		if err != nil {
			return GradeStatistics{}, fmt.Errorf("failed to query grades: %w", err)
		}
		all = append(all, values(grades)...)
	}
	return statistics(all), nil
}

func (s *gradeService) StatisticsBySubject(ctx context.Context, subject string) (GradeStatistics, error) {
	grades, err := s.repo.Grade().BySubject(ctx, subject)
	if err != nil {
		return GradeStatistics{}, fmt.Errorf("failed to query grades: %w", err)
	}
	return statistics(values(grades)), nil
}

func (s *gradeService) StudentProgress(ctx context.Context, studentID int, subject string) (*StudentProgress, error) {
	student, err := s.repo.User().GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("student %d: %w", studentID, err)
	}
	if student.Student == nil {
		return nil, NewValidationError("student_id", "user is not a student", studentID)
	}

	grades, err := s.HistoryForStudent(ctx, studentID, subject)
	if err != nil {
		return nil, err
	}

	assignments, err := s.repo.Assignment().ByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}

	var (
		progress  []AssignmentProgress
		total     int
		submitted int
	)
	for _, assignment := range assignments {
		if subject != "" && assignment.Subject != subject {
			continue
		}
		total++

		status := models.SubmissionPending
		if st, ok := student.Student.Assignments[assignment.ID]; ok {
			status = st.Status
		}
		if status == models.SubmissionSubmitted {
			submitted++
		}

		var gradeValue *int
		if v, ok := assignment.Grades[studentID]; ok {
			gradeValue = &v
		}
		progress = append(progress, AssignmentProgress{
			AssignmentID: assignment.ID,
			Title:        assignment.Title,
			Subject:      assignment.Subject,
			Deadline:     assignment.Deadline,
			Status:       status,
			Grade:        gradeValue,
		})
	}

	completionRate := 0.0
	if total > 0 {
		completionRate = math.Round(float64(submitted)/float64(total)*10000) / 100
	}

	stats, err := s.StatisticsByStudent(ctx, studentID, subject)
	if err != nil {
		return nil, err
	}

	return &StudentProgress{
		StudentID:      studentID,
		FullName:       student.FullName,
		ClassID:        student.Student.ClassID,
		Grades:         grades,
		Assignments:    progress,
		CompletionRate: completionRate,
		Statistics:     stats,
	}, nil
}

func values(grades []*models.Grade) []int {
	out := make([]int, 0, len(grades))
	for _, g := range grades {
		out = append(out, g.Value)
	}
	return out
}

func statistics(values []int) GradeStatistics {
	if len(values) == 0 {
		return GradeStatistics{}
	}

	total := 0
	highest := values[0]
	lowest := values[0]
	for _, v := range values {
		total += v
		if v > highest {
			highest = v
		}
		if v < lowest {
			lowest = v
		}
	}

	average := float64(total) / float64(len(values))
	return GradeStatistics{
		Average: math.Round(average*100) / 100,
		Highest: float64(highest),
		Lowest:  float64(lowest),
	}
}
