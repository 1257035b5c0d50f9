package models

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

type UserRole string

const (
	RoleAdmin   UserRole = "Admin"
	RoleTeacher UserRole = "Teacher"
	RoleStudent UserRole = "Student"
	RoleParent  UserRole = "Parent"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return true
	}
	return false
}

// User is the single user record for every role. Exactly one of the
// role payloads is non-nil, matching Role; Admin carries no payload.
// Role is immutable after construction.
type User struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	FullName     string    `json:"full_name" gorm:"not null;size:100"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string    `json:"-" gorm:"not null;size:64"`
	Role         UserRole  `json:"role" gorm:"not null;size:20"`
	CreatedAt    time.Time `json:"created_at"`

	// Delivered notification snapshots, in delivery order.
	Notifications []Notification `json:"notifications" gorm:"-"`

	Student *StudentProfile `json:"student,omitempty" gorm:"-"`
	Teacher *TeacherProfile `json:"teacher,omitempty" gorm:"-"`
	Parent  *ParentProfile  `json:"parent,omitempty" gorm:"-"`
}

func (User) TableName() string {
	return "users"
}

// StudentProfile holds the student-specific payload of a User.
type StudentProfile struct {
	ClassID string `json:"class_id"`

	// Assignments tracks per-assignment submission state, keyed by
	// assignment id.
	Assignments map[int]AssignmentStatus `json:"assignments"`

	// Grades holds the latest grade value per subject.
	Grades map[string]int `json:"grades"`
}

// AssignmentStatus is a student's view of one assignment.
type AssignmentStatus struct {
	Status  SubmissionStatus `json:"status"`
	Content string           `json:"content"`
}

type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "Pending"
	SubmissionSubmitted SubmissionStatus = "Submitted"
)

// TeacherProfile holds the teacher-specific payload of a User.
type TeacherProfile struct {
	Subjects map[string]struct{} `json:"subjects"`
	Classes  map[string]struct{} `json:"classes"`
}

// ParentProfile holds the parent-specific payload of a User.
type ParentProfile struct {
	// Children is an ordered list of linked student ids, no duplicates.
	Children []int `json:"children"`
}

func newUser(id int, fullName, email, passwordHash string, role UserRole) (*User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("user id must be a positive integer, got %d", id)
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, fmt.Errorf("full name cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email %q: %w", email, err)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash cannot be empty")
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	return &User{
		ID:           id,
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// NewAdmin creates an admin user. Admins carry no role payload.
func NewAdmin(id int, fullName, email, passwordHash string) (*User, error) {
	return newUser(id, fullName, email, passwordHash, RoleAdmin)
}

// NewTeacher creates a teacher user with empty subject and class sets.
func NewTeacher(id int, fullName, email, passwordHash string) (*User, error) {
	u, err := newUser(id, fullName, email, passwordHash, RoleTeacher)
	if err != nil {
		return nil, err
	}
	u.Teacher = &TeacherProfile{
		Subjects: make(map[string]struct{}),
		Classes:  make(map[string]struct{}),
	}
	return u, nil
}

// NewStudent creates a student user. classID must match the class id
// format (digits followed by a single letter, e.g. "9A").
func NewStudent(id int, fullName, email, passwordHash, classID string) (*User, error) {
	if !classIDPattern.MatchString(classID) {
		return nil, fmt.Errorf("class id %q must match digits+letter, e.g. \"9A\"", classID)
	}
	u, err := newUser(id, fullName, email, passwordHash, RoleStudent)
	if err != nil {
		return nil, err
	}
	u.Student = &StudentProfile{
		ClassID:     classID,
		Assignments: make(map[int]AssignmentStatus),
		Grades:      make(map[string]int),
	}
	return u, nil
}

// NewParent creates a parent user with no linked children.
func NewParent(id int, fullName, email, passwordHash string) (*User, error) {
	u, err := newUser(id, fullName, email, passwordHash, RoleParent)
	if err != nil {
		return nil, err
	}
	u.Parent = &ParentProfile{}
	return u, nil
}

// HashPassword returns the hex-encoded SHA-256 digest of pwd.
func HashPassword(pwd string) string {
	sum := sha256.Sum256([]byte(pwd))
	return hex.EncodeToString(sum[:])
}

// CheckPassword reports whether pwd hashes to the stored digest.
func (u *User) CheckPassword(pwd string) bool {
	return subtle.ConstantTimeCompare([]byte(u.PasswordHash), []byte(HashPassword(pwd))) == 1
}

// UpdateProfile updates the mutable profile fields. Empty arguments
// leave the corresponding field untouched.
func (u *User) UpdateProfile(fullName, email string) error {
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("invalid email %q: %w", email, err)
		}
		u.Email = email
	}
	if fullName != "" {
		u.FullName = fullName
	}
	return nil
}

// Profile returns the role-independent profile fields.
func (u *User) Profile() map[string]any {
	return map[string]any{
		"id":         u.ID,
		"full_name":  u.FullName,
		"email":      u.Email,
		"role":       string(u.Role),
		"created_at": u.CreatedAt.Format(time.RFC3339),
	}
}

// AddNotification appends a delivered notification snapshot.
func (u *User) AddNotification(n Notification) {
	u.Notifications = append(u.Notifications, n)
}

// ViewNotifications filters the delivered snapshots. A zero priority
// means no priority filter.
func (u *User) ViewNotifications(unreadOnly bool, priority Priority) []Notification {
	out := make([]Notification, 0, len(u.Notifications))
	for _, n := range u.Notifications {
		if unreadOnly && n.IsRead {
			continue
		}
		if priority != "" && n.Priority != priority {
			continue
		}
		out = append(out, n)
	}
	return out
}

// DeleteNotification removes a snapshot by id. Missing ids are ignored.
func (u *User) DeleteNotification(id int) {
	kept := u.Notifications[:0]
	for _, n := range u.Notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	u.Notifications = kept
}

// AverageGrade returns the mean of the student's latest per-subject
// grades, or 0 when none exist. Zero for non-students.
func (u *User) AverageGrade() float64 {
	if u.Student == nil || len(u.Student.Grades) == 0 {
		return 0
	}
	var total int
	for _, v := range u.Student.Grades {
		total += v
	}
	return float64(total) / float64(len(u.Student.Grades))
}

// HasChild reports whether the parent is linked to the given student.
func (u *User) HasChild(childID int) bool {
	if u.Parent == nil {
		return false
	}
	for _, id := range u.Parent.Children {
		if id == childID {
			return true
		}
	}
	return false
}
