package validator

import (
	"time"

	"github.com/eduplatform/school-service/internal/models"
)

// UserCreateRequest represents the request structure for registering users.
type UserCreateRequest struct {
	ID       int             `json:"id" validate:"required,gt=0"`
	FullName string          `json:"full_name" validate:"required,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     models.UserRole `json:"role" validate:"required,user_role"`

	// ClassID is required for students only.
	ClassID string `json:"class_id" validate:"required_if=Role Student,omitempty,class_id"`
}

// ProfileUpdateRequest represents a partial profile update. Empty
// fields are left untouched.
type ProfileUpdateRequest struct {
	FullName string `json:"full_name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// ScheduleCreateRequest represents the request structure for creating
// a class/day schedule.
type ScheduleCreateRequest struct {
	ID      int    `json:"id" validate:"required,gt=0"`
	ClassID string `json:"class_id" validate:"required,class_id"`
	Day     string `json:"day" validate:"required,max=16"`
}

// LessonAddRequest represents adding one lesson to a schedule.
type LessonAddRequest struct {
	TimeSlot  string `json:"time_slot" validate:"required,time_slot"`
	Subject   string `json:"subject" validate:"required,max=100"`
	TeacherID int    `json:"teacher_id" validate:"required,gt=0"`
}

// AssignmentCreateRequest represents the request structure for issuing
// an assignment to a class.
type AssignmentCreateRequest struct {
	ID          int                    `json:"id" validate:"required,gt=0"`
	Title       string                 `json:"title" validate:"required,max=200"`
	Description string                 `json:"description" validate:"omitempty,max=1000"`
	Deadline    time.Time              `json:"deadline" validate:"required"`
	Subject     string                 `json:"subject" validate:"required,max=100"`
	TeacherID   int                    `json:"teacher_id" validate:"required,gt=0"`
	ClassID     string                 `json:"class_id" validate:"required,class_id"`
	Difficulty  models.DifficultyLevel `json:"difficulty" validate:"omitempty,difficulty_level"`
}

// GradeCreateRequest represents the request structure for recording a
// grade directly (outside assignment grading).
type GradeCreateRequest struct {
	ID        int    `json:"id" validate:"required,gt=0"`
	StudentID int    `json:"student_id" validate:"required,gt=0"`
	Subject   string `json:"subject" validate:"required,max=100"`
	Value     int    `json:"value" validate:"required,grade_value"`
	// Date defaults to the current time when zero.
	Date      time.Time `json:"date"`
	TeacherID int       `json:"teacher_id" validate:"required,gt=0"`
	Comments  []string  `json:"comments" validate:"omitempty,dive,max=500"`
}
