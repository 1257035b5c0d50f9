package models

import (
	"fmt"
	"strings"
	"time"
)

// Grade is a single recorded grade for a student in a subject.
type Grade struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	StudentID int       `json:"student_id" gorm:"not null;index"`
	Subject   string    `json:"subject" gorm:"not null;size:100"`
	Value     int       `json:"value" gorm:"not null"`
	Date      time.Time `json:"date" gorm:"not null"`
	TeacherID int       `json:"teacher_id" gorm:"not null"`
	Comments  []string  `json:"comments" gorm:"-"`
}

func (Grade) TableName() string {
	return "grades"
}

// NewGrade validates and creates a grade record. Value must be in [1,5].
func NewGrade(id, studentID int, subject string, value int, date time.Time, teacherID int, comments ...string) (*Grade, error) {
	if id <= 0 {
		return nil, fmt.Errorf("grade id must be a positive integer, got %d", id)
	}
	if studentID <= 0 {
		return nil, fmt.Errorf("student id must be a positive integer, got %d", studentID)
	}
	if teacherID <= 0 {
		return nil, fmt.Errorf("teacher id must be a positive integer, got %d", teacherID)
	}
	if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("subject cannot be empty")
	}
	if value < 1 || value > 5 {
		return nil, fmt.Errorf("grade value must be between 1 and 5, got %d", value)
	}
	return &Grade{
		ID:        id,
		StudentID: studentID,
		Subject:   subject,
		Value:     value,
		Date:      date,
		TeacherID: teacherID,
		Comments:  append([]string(nil), comments...),
	}, nil
}

// Update replaces the value when newValue is in range and returns true.
// The value path is exclusive: an in-range update never touches the
// comments. Only when newValue is out of range and a comment is given
// is the comment appended instead. Both out of range and no comment
// returns false.
func (g *Grade) Update(newValue int, comment string) bool {
	if newValue >= 1 && newValue <= 5 {
		g.Value = newValue
		return true
	}
	if comment != "" {
		g.Comments = append(g.Comments, comment)
		return true
	}
	return false
}
