package models

import (
	"fmt"
	"regexp"
	"time"
)

var classIDPattern = regexp.MustCompile(`^\d+[A-Za-z]$`)

// ValidClassID reports whether s is a well-formed class id
// (digits followed by a single letter, e.g. "9A").
func ValidClassID(s string) bool {
	return classIDPattern.MatchString(s)
}

// ValidTimeSlot reports whether s is a "HH:MM-HH:MM" slot label with
// both halves parseable as times of day. Start/end ordering is not
// checked; slot labels are opaque keys, not intervals.
func ValidTimeSlot(s string) bool {
	parts := timeSlotSplit.FindStringSubmatch(s)
	if parts == nil {
		return false
	}
	for _, p := range parts[1:] {
		if _, err := time.Parse("15:04", p); err != nil {
			return false
		}
	}
	return true
}

var timeSlotSplit = regexp.MustCompile(`^([^-]+)-([^-]+)$`)

// Lesson is one slot entry of a schedule.
type Lesson struct {
	Subject   string `json:"subject"`
	TeacherID int    `json:"teacher_id"`
}

// Schedule is the set of lessons for one class on one day, keyed by
// time-slot label.
type Schedule struct {
	ID      int               `json:"id" gorm:"primaryKey"`
	ClassID string            `json:"class_id" gorm:"not null;size:10;index"`
	Day     string            `json:"day" gorm:"not null;size:16"`
	Lessons map[string]Lesson `json:"lessons" gorm:"-"`
}

func (Schedule) TableName() string {
	return "schedules"
}

// NewSchedule validates and creates an empty schedule for one class/day.
func NewSchedule(id int, classID, day string) (*Schedule, error) {
	if id <= 0 {
		return nil, fmt.Errorf("schedule id must be a positive integer, got %d", id)
	}
	if !ValidClassID(classID) {
		return nil, fmt.Errorf("class id %q must match digits+letter, e.g. \"9A\"", classID)
	}
	if day == "" {
		return nil, fmt.Errorf("day cannot be empty")
	}
	return &Schedule{
		ID:      id,
		ClassID: classID,
		Day:     day,
		Lessons: make(map[string]Lesson),
	}, nil
}

// HasLessonAt reports whether a lesson occupies the given slot label.
func (s *Schedule) HasLessonAt(timeSlot string) bool {
	_, ok := s.Lessons[timeSlot]
	return ok
}

// TeachesAt reports whether teacherID is booked at the given slot label.
func (s *Schedule) TeachesAt(timeSlot string, teacherID int) bool {
	lesson, ok := s.Lessons[timeSlot]
	return ok && lesson.TeacherID == teacherID
}

// SetLesson inserts a lesson at the slot. Conflict checking is the
// schedule service's job; callers must not bypass it.
func (s *Schedule) SetLesson(timeSlot, subject string, teacherID int) {
	s.Lessons[timeSlot] = Lesson{Subject: subject, TeacherID: teacherID}
}

// RemoveLesson deletes the lesson at the slot. Idempotent.
func (s *Schedule) RemoveLesson(timeSlot string) {
	delete(s.Lessons, timeSlot)
}

// View returns an immutable snapshot of the schedule.
func (s *Schedule) View() ScheduleView {
	lessons := make(map[string]Lesson, len(s.Lessons))
	for slot, l := range s.Lessons {
		lessons[slot] = l
	}
	return ScheduleView{ID: s.ID, ClassID: s.ClassID, Day: s.Day, Lessons: lessons}
}

// ScheduleView is a detached copy of a schedule's state.
type ScheduleView struct {
	ID      int               `json:"id"`
	ClassID string            `json:"class_id"`
	Day     string            `json:"day"`
	Lessons map[string]Lesson `json:"lessons"`
}
