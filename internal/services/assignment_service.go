package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eduplatform/school-service/internal/events"
	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories"
	"github.com/eduplatform/school-service/internal/validator"
)

type assignmentService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	notification   NotificationService
}

func NewAssignmentService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, notification NotificationService) AssignmentService {
	return &assignmentService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      validator,
		notification:   notification,
	}
}

func (s *assignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*models.Assignment, error) {
	if errs := s.validator.Validate(&req); errs != nil {
		return nil, errs
	}

	assignment, err := models.NewAssignment(req.ID, req.Title, req.Description, req.Deadline,
		req.Subject, req.TeacherID, req.ClassID, req.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to construct assignment: %w", err)
	}

	if err := s.repo.Assignment().Add(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to add assignment %d: %w", assignment.ID, err)
	}

	// Register a pending entry on every student of the class.
	studentIDs, err := s.repo.User().StudentsByClass(ctx, assignment.ClassID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve class students: %w", err)
	}
	for _, studentID := range studentIDs {
		student, err := s.repo.User().GetByID(ctx, studentID)
		if err != nil {
			return nil, fmt.Errorf("student %d: %w", studentID, err)
		}
		student.Student.Assignments[assignment.ID] = models.AssignmentStatus{
			Status: models.SubmissionPending,
		}
	}

	s.logger.Info("Assignment created",
		"assignment_id", assignment.ID,
		"class_id", assignment.ClassID,
		"students", len(studentIDs))

	return assignment, nil
}

func (s *assignmentService) Get(ctx context.Context, id int) (*models.Assignment, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("assignment %d: %w", id, err)
	}
	return assignment, nil
}

func (s *assignmentService) Remove(ctx context.Context, id int) error {
	if err := s.repo.Assignment().Remove(ctx, id); err != nil {
		return fmt.Errorf("assignment %d: %w", id, err)
	}
	s.logger.Info("Assignment removed", "assignment_id", id)
	return nil
}

func (s *assignmentService) Submit(ctx context.Context, assignmentID, studentID int, content string) (bool, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		return false, fmt.Errorf("assignment %d: %w", assignmentID, err)
	}

	student, err := s.repo.User().GetByID(ctx, studentID)
	if err != nil {
		return false, fmt.Errorf("student %d: %w", studentID, err)
	}
	if student.Student == nil {
		return false, NewValidationError("student_id", "user is not a student", studentID)
	}

	if !assignment.AddSubmission(studentID, content) {
		return false, nil
	}
	student.Student.Assignments[assignmentID] = models.AssignmentStatus{
		Status:  models.SubmissionSubmitted,
		Content: content,
	}

	s.logger.Info("Submission recorded",
		"assignment_id", assignmentID,
		"student_id", studentID)
	return true, nil
}

// SetGrade grades a submission. On success it persists a Grade record,
// updates the student's latest subject grade and notifies the student.
// The steps are not atomic; a failure partway leaves partial state.
func (s *assignmentService) SetGrade(ctx context.Context, assignmentID, studentID, value int) (bool, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		return false, fmt.Errorf("assignment %d: %w", assignmentID, err)
	}

	if !assignment.SetGrade(studentID, value) {
		return false, nil
	}

	gradeID, err := s.repo.Grade().NextID(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to allocate grade id: %w", err)
	}
	grade, err := models.NewGrade(gradeID, studentID, assignment.Subject, value, time.Now().UTC(), assignment.TeacherID)
	if err != nil {
		return false, fmt.Errorf("failed to construct grade: %w", err)
	}
	if err := s.repo.Grade().Add(ctx, grade); err != nil {
		return false, fmt.Errorf("failed to add grade %d: %w", gradeID, err)
	}

	student, err := s.repo.User().GetByID(ctx, studentID)
	if err != nil {
		return false, fmt.Errorf("student %d: %w", studentID, err)
	}
	if student.Student != nil {
		student.Student.Grades[assignment.Subject] = value
	}

	message := fmt.Sprintf("Your assignment '%s' has been graded with %d.", assignment.Title, value)
	if _, err := s.notification.Deliver(ctx, message, studentID, models.PriorityMedium); err != nil {
		s.logger.Error("Failed to deliver grading notification",
			"assignment_id", assignmentID,
			"student_id", studentID,
			"error", err)
	}

	event := events.NewEvent(events.TypeAssignmentGraded, map[string]any{
		"assignment_id": assignmentID,
		"student_id":    studentID,
		"grade_id":      gradeID,
		"value":         value,
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicNotifications, event); err != nil {
		s.logger.Error("Failed to publish grading event", "assignment_id", assignmentID, "error", err)
	}

	s.logger.Info("Assignment graded",
		"assignment_id", assignmentID,
		"student_id", studentID,
		"value", value)
	return true, nil
}

func (s *assignmentService) Status(ctx context.Context, assignmentID int) (models.AggregateStatus, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		return models.AggregateStatus{}, fmt.Errorf("assignment %d: %w", assignmentID, err)
	}
	return assignment.Status(), nil
}

func (s *assignmentService) StatusFor(ctx context.Context, assignmentID, studentID int) (models.StudentStatus, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		return models.StudentStatus{}, fmt.Errorf("assignment %d: %w", assignmentID, err)
	}
	return assignment.StatusFor(studentID), nil
}

func (s *assignmentService) ByClass(ctx context.Context, classID string) ([]*models.Assignment, error) {
	return s.repo.Assignment().ByClass(ctx, classID)
}

func (s *assignmentService) ByStudent(ctx context.Context, studentID int) ([]*models.Assignment, error) {
	assignments, err := s.repo.Assignment().ByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("student %d: %w", studentID, err)
	}
	return assignments, nil
}
