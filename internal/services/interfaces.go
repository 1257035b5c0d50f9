package services

import (
	"context"
	"time"

	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Use domain validator types
type CreateUserRequest = validator.UserCreateRequest
type UpdateProfileRequest = validator.ProfileUpdateRequest
type CreateScheduleRequest = validator.ScheduleCreateRequest
type AddLessonRequest = validator.LessonAddRequest
type CreateAssignmentRequest = validator.AssignmentCreateRequest
type CreateGradeRequest = validator.GradeCreateRequest

// ===== RESPONSE DTOs =====

// AuthResult is the outcome of a successful authentication.
type AuthResult struct {
	UserID int             `json:"user_id"`
	Role   models.UserRole `json:"role"`
}

// GradeStatistics aggregates grade values.
type GradeStatistics struct {
	Average float64 `json:"average"`
	Highest float64 `json:"highest"`
	Lowest  float64 `json:"lowest"`
}

// AssignmentProgress is one assignment's state within a progress view.
type AssignmentProgress struct {
	AssignmentID int                     `json:"assignment_id"`
	Title        string                  `json:"title"`
	Subject      string                  `json:"subject"`
	Deadline     time.Time               `json:"deadline"`
	Status       models.SubmissionStatus `json:"status"`
	Grade        *int                    `json:"grade"`
}

// StudentProgress summarises a student's grades and assignment state.
type StudentProgress struct {
	StudentID      int                  `json:"student_id"`
	FullName       string               `json:"full_name"`
	ClassID        string               `json:"class_id"`
	Grades         []*models.Grade      `json:"grades"`
	Assignments    []AssignmentProgress `json:"assignments"`
	CompletionRate float64              `json:"completion_rate"`
	Statistics     GradeStatistics      `json:"statistics"`
}

// ===== SERVICE INTERFACES =====

// UserService covers registration, authentication, profiles and the
// admin/parent user operations.
type UserService interface {
	Register(ctx context.Context, req CreateUserRequest) (*models.User, error)
	Get(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateProfile(ctx context.Context, userID int, req UpdateProfileRequest) error
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)

	// RemoveUser is admin-only; actorID must resolve to an admin.
	RemoveUser(ctx context.Context, actorID, userID int) error

	AddChild(ctx context.Context, parentID, childID int) error
	RemoveChild(ctx context.Context, parentID, childID int) error
}

// ScheduleService owns schedules and lesson placement, including the
// double-booking conflict check.
type ScheduleService interface {
	Create(ctx context.Context, req CreateScheduleRequest) (*models.Schedule, error)
	Get(ctx context.Context, id int) (*models.Schedule, error)
	Remove(ctx context.Context, id int) error
	AddLesson(ctx context.Context, scheduleID int, req AddLessonRequest) error
	RemoveLesson(ctx context.Context, scheduleID int, timeSlot string) error
	View(ctx context.Context, scheduleID int) (models.ScheduleView, error)
	ByClass(ctx context.Context, classID string) ([]models.ScheduleView, error)
	ByTeacher(ctx context.Context, teacherID int) ([]models.ScheduleView, error)
}

// AssignmentService owns assignments, submissions and assignment
// grading with its side effects.
type AssignmentService interface {
	Create(ctx context.Context, req CreateAssignmentRequest) (*models.Assignment, error)
	Get(ctx context.Context, id int) (*models.Assignment, error)
	Remove(ctx context.Context, id int) error

	// Submit records a student submission; false when the student
	// already submitted (first write wins).
	Submit(ctx context.Context, assignmentID, studentID int, content string) (bool, error)

	// SetGrade grades a submission; false when the value is out of
	// range or no submission exists. On success a Grade record is
	// persisted and the student is notified.
	SetGrade(ctx context.Context, assignmentID, studentID, value int) (bool, error)

	Status(ctx context.Context, assignmentID int) (models.AggregateStatus, error)
	StatusFor(ctx context.Context, assignmentID, studentID int) (models.StudentStatus, error)
	ByClass(ctx context.Context, classID string) ([]*models.Assignment, error)
	ByStudent(ctx context.Context, studentID int) ([]*models.Assignment, error)
}

// GradeService owns grade records, history and statistics.
type GradeService interface {
	Record(ctx context.Context, req CreateGradeRequest) (*models.Grade, error)
	Get(ctx context.Context, id int) (*models.Grade, error)
	Remove(ctx context.Context, id int) error

	// Update is value-first and exclusive of the comment append; see
	// models.Grade.Update.
	Update(ctx context.Context, gradeID, newValue int, comment string) (bool, error)

	// HistoryForStudent returns grades sorted by date descending.
	// An empty subject means no subject filter.
	HistoryForStudent(ctx context.Context, studentID int, subject string) ([]*models.Grade, error)

	StatisticsByStudent(ctx context.Context, studentID int, subject string) (GradeStatistics, error)
	StatisticsByClass(ctx context.Context, classID, subject string) (GradeStatistics, error)
	StatisticsBySubject(ctx context.Context, subject string) (GradeStatistics, error)
	StudentProgress(ctx context.Context, studentID int, subject string) (*StudentProgress, error)
}

// NotificationService owns notification delivery, the parent-facing
// rule engine and read-state transitions.
type NotificationService interface {
	// Deliver persists a notification, appends it to the recipient's
	// snapshot list and publishes a delivery event.
	Deliver(ctx context.Context, message string, recipientID int, priority models.Priority) (*models.Notification, error)

	// ChildNotifications returns the parent's notifications about one
	// child and, when generateNew is set, synthesizes low-grade and
	// missed-deadline notifications first. Idempotent under unchanged
	// state.
	ChildNotifications(ctx context.Context, parentID, childID int, generateNew bool) ([]models.Notification, error)

	// DeadlineReminders delivers due-tomorrow reminders to a student
	// and returns how many were sent.
	DeadlineReminders(ctx context.Context, studentID int) (int, error)

	MarkRead(ctx context.Context, notificationID int) error
	ByUser(ctx context.Context, userID int, unreadOnly bool, priority models.Priority) ([]*models.Notification, error)
}

// ExportService snapshots every collection and writes export files.
type ExportService interface {
	// ExportAll is admin-only; it returns the written file paths.
	ExportAll(ctx context.Context, actorID int, format string) ([]string, error)
}

// ServiceManager wires and exposes all services.
type ServiceManager interface {
	User() UserService
	Schedule() ScheduleService
	Assignment() AssignmentService
	Grade() GradeService
	Notification() NotificationService
	Export() ExportService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
