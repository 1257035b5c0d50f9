package repositories

import (
	"context"
	"time"

	"github.com/eduplatform/school-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type NotificationFilters struct {
	UnreadOnly bool
	// Priority filters by exact priority when non-empty.
	Priority models.Priority
}

type GradeFilters struct {
	// Subject filters by exact subject when non-empty.
	Subject string
}

// ===== ENTITY REPOSITORIES =====

// UserRepository owns the users collection.
type UserRepository interface {
	Add(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Remove(ctx context.Context, id int) error
	List(ctx context.Context) ([]*models.User, error)

	// StudentsByClass returns the ids of students enrolled in a class.
	StudentsByClass(ctx context.Context, classID string) ([]int, error)

	ExistsByID(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int, error)
}

// ScheduleRepository owns the schedules collection.
type ScheduleRepository interface {
	Add(ctx context.Context, schedule *models.Schedule) error
	GetByID(ctx context.Context, id int) (*models.Schedule, error)
	Remove(ctx context.Context, id int) error
	List(ctx context.Context) ([]*models.Schedule, error)

	ByClass(ctx context.Context, classID string) ([]*models.Schedule, error)
	ByTeacher(ctx context.Context, teacherID int) ([]*models.Schedule, error)

	Count(ctx context.Context) (int, error)
}

// AssignmentRepository owns the assignments collection.
type AssignmentRepository interface {
	Add(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id int) (*models.Assignment, error)
	Remove(ctx context.Context, id int) error
	List(ctx context.Context) ([]*models.Assignment, error)

	ByClass(ctx context.Context, classID string) ([]*models.Assignment, error)
	// ByStudent resolves the assignments registered on a student's
	// profile, skipping dangling ids.
	ByStudent(ctx context.Context, studentID int) ([]*models.Assignment, error)
	// DueBetween returns assignments whose deadline falls in [from, to).
	DueBetween(ctx context.Context, from, to time.Time) ([]*models.Assignment, error)

	Count(ctx context.Context) (int, error)
}

// GradeRepository owns the grades collection.
type GradeRepository interface {
	Add(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id int) (*models.Grade, error)
	Remove(ctx context.Context, id int) error
	List(ctx context.Context) ([]*models.Grade, error)

	ByStudent(ctx context.Context, studentID int, filters GradeFilters) ([]*models.Grade, error)
	BySubject(ctx context.Context, subject string) ([]*models.Grade, error)
	// ByWeek returns grades dated in [weekStart, weekStart+7d).
	ByWeek(ctx context.Context, weekStart time.Time) ([]*models.Grade, error)
	// ByMonth returns grades dated in the given calendar month.
	ByMonth(ctx context.Context, year int, month time.Month) ([]*models.Grade, error)

	// NextID returns an id one past the highest in use.
	NextID(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

// NotificationRepository owns the notifications collection.
type NotificationRepository interface {
	Add(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id int) (*models.Notification, error)
	Remove(ctx context.Context, id int) error
	List(ctx context.Context) ([]*models.Notification, error)

	ByUser(ctx context.Context, userID int, filters NotificationFilters) ([]*models.Notification, error)
	Filter(ctx context.Context, filters NotificationFilters) ([]*models.Notification, error)

	// NextID returns an id one past the highest in use.
	NextID(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}
