package models

import (
	"fmt"
	"strings"
	"time"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Assignment is a task issued to a class with a deadline, tracking
// per-student submissions and grades.
type Assignment struct {
	ID          int             `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null;size:200"`
	Description string          `json:"description" gorm:"type:text"`
	Deadline    time.Time       `json:"deadline" gorm:"not null"`
	Subject     string          `json:"subject" gorm:"not null;size:100"`
	TeacherID   int             `json:"teacher_id" gorm:"not null;index"`
	ClassID     string          `json:"class_id" gorm:"not null;size:10;index"`
	Difficulty  DifficultyLevel `json:"difficulty" gorm:"not null;size:10"`

	Submissions map[int]string `json:"submissions" gorm:"-"`
	Grades      map[int]int    `json:"grades" gorm:"-"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// NewAssignment validates and creates an assignment. A zero difficulty
// defaults to medium.
func NewAssignment(id int, title, description string, deadline time.Time, subject string, teacherID int, classID string, difficulty DifficultyLevel) (*Assignment, error) {
	if id <= 0 {
		return nil, fmt.Errorf("assignment id must be a positive integer, got %d", id)
	}
	if teacherID <= 0 {
		return nil, fmt.Errorf("teacher id must be a positive integer, got %d", teacherID)
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}
	if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("subject cannot be empty")
	}
	if !ValidClassID(classID) {
		return nil, fmt.Errorf("class id %q must match digits+letter, e.g. \"9A\"", classID)
	}
	if difficulty == "" {
		difficulty = DifficultyMedium
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("difficulty must be easy, medium or hard, got %q", difficulty)
	}
	return &Assignment{
		ID:          id,
		Title:       title,
		Description: description,
		Deadline:    deadline,
		Subject:     subject,
		TeacherID:   teacherID,
		ClassID:     classID,
		Difficulty:  difficulty,
		Submissions: make(map[int]string),
		Grades:      make(map[int]int),
	}, nil
}

// AddSubmission records a student's submission. At most one submission
// per student; the first write wins and repeats return false.
func (a *Assignment) AddSubmission(studentID int, content string) bool {
	if _, ok := a.Submissions[studentID]; ok {
		return false
	}
	a.Submissions[studentID] = content
	return true
}

// SetGrade records a grade for a student's submission. Returns false
// when the value is out of range or no submission exists. Persistence
// side effects (Grade record, student state, notification) belong to
// the assignment service.
func (a *Assignment) SetGrade(studentID, value int) bool {
	if value < 1 || value > 5 {
		return false
	}
	if _, ok := a.Submissions[studentID]; !ok {
		return false
	}
	a.Grades[studentID] = value
	return true
}

// AggregateStatus summarises submission and grading counts.
type AggregateStatus struct {
	TotalSubmissions int `json:"total_submissions"`
	TotalGrades      int `json:"total_grades"`
}

// StudentStatus is the per-student submission state.
type StudentStatus struct {
	Submitted bool `json:"submitted"`
	Grade     *int `json:"grade"`
}

// Status returns the aggregate submission counts.
func (a *Assignment) Status() AggregateStatus {
	return AggregateStatus{
		TotalSubmissions: len(a.Submissions),
		TotalGrades:      len(a.Grades),
	}
}

// StatusFor returns the submission state for one student.
func (a *Assignment) StatusFor(studentID int) StudentStatus {
	if _, ok := a.Submissions[studentID]; !ok {
		return StudentStatus{}
	}
	st := StudentStatus{Submitted: true}
	if g, ok := a.Grades[studentID]; ok {
		st.Grade = &g
	}
	return st
}
