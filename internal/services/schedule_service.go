package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories"
	"github.com/eduplatform/school-service/internal/validator"
)

// ProposedLesson is the candidate checked for double-booking.
type ProposedLesson struct {
	ClassID   string
	Day       string
	TimeSlot  string
	TeacherID int
}

// HasConflict reports whether the proposed lesson collides with any
// existing lesson, and names the colliding resource ("teacher N" or
// "class X") when it does. Three checks, all on the target day:
//
//  1. the target schedule already has a lesson at the slot;
//  2. another schedule has the same teacher booked at the slot;
//  3. another schedule for the same class has a lesson at the slot
//     (redundant with 1 for a single schedule object, kept in case
//     divergent schedules exist for the same class).
//
// Slot equality is an exact string match on the label: "09:00-09:45"
// and "09:15-09:30" do not conflict even though the intervals overlap.
// That is the contract, not an oversight. O(schedules x lessons).
func HasConflict(proposed ProposedLesson, target *models.Schedule, all []*models.Schedule) (bool, string) {
	if target != nil && target.HasLessonAt(proposed.TimeSlot) {
		return true, fmt.Sprintf("class %s", proposed.ClassID)
	}

	for _, schedule := range all {
		if target != nil && schedule.ID == target.ID {
			continue
		}
		if schedule.Day != proposed.Day {
			continue
		}
		if schedule.TeachesAt(proposed.TimeSlot, proposed.TeacherID) {
			return true, fmt.Sprintf("teacher %d", proposed.TeacherID)
		}
		if schedule.ClassID == proposed.ClassID && schedule.HasLessonAt(proposed.TimeSlot) {
			return true, fmt.Sprintf("class %s", proposed.ClassID)
		}
	}
	return false, ""
}

type scheduleService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	notification NotificationService
}

func NewScheduleService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, notification NotificationService) ScheduleService {
	return &scheduleService{
		repo:         repo,
		logger:       logger,
		validator:    validator,
		notification: notification,
	}
}

func (s *scheduleService) Create(ctx context.Context, req CreateScheduleRequest) (*models.Schedule, error) {
	if errs := s.validator.Validate(&req); errs != nil {
		return nil, errs
	}

	schedule, err := models.NewSchedule(req.ID, req.ClassID, req.Day)
	if err != nil {
		return nil, fmt.Errorf("failed to construct schedule: %w", err)
	}

	if err := s.repo.Schedule().Add(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to add schedule %d: %w", schedule.ID, err)
	}

	s.logger.Info("Schedule created",
		"schedule_id", schedule.ID,
		"class_id", schedule.ClassID,
		"day", schedule.Day)

	// Students of the class learn about their new schedule. Delivery
	// failures do not undo the creation.
	s.notifyClass(ctx, schedule.ClassID)

	return schedule, nil
}

func (s *scheduleService) notifyClass(ctx context.Context, classID string) {
	studentIDs, err := s.repo.User().StudentsByClass(ctx, classID)
	if err != nil {
		s.logger.Error("Failed to resolve class students", "class_id", classID, "error", err)
		return
	}
	message := fmt.Sprintf("New schedule added for class %s", classID)
	for _, studentID := range studentIDs {
		if _, err := s.notification.Deliver(ctx, message, studentID, models.PriorityMedium); err != nil {
			s.logger.Error("Failed to deliver schedule notification",
				"student_id", studentID,
				"error", err)
		}
	}
}

func (s *scheduleService) Get(ctx context.Context, id int) (*models.Schedule, error) {
	schedule, err := s.repo.Schedule().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("schedule %d: %w", id, err)
	}
	return schedule, nil
}

func (s *scheduleService) Remove(ctx context.Context, id int) error {
	if err := s.repo.Schedule().Remove(ctx, id); err != nil {
		return fmt.Errorf("schedule %d: %w", id, err)
	}
	s.logger.Info("Schedule removed", "schedule_id", id)
	return nil
}

func (s *scheduleService) AddLesson(ctx context.Context, scheduleID int, req AddLessonRequest) error {
	if errs := s.validator.Validate(&req); errs != nil {
		return errs
	}

	schedule, err := s.repo.Schedule().GetByID(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("schedule %d: %w", scheduleID, err)
	}

	all, err := s.repo.Schedule().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list schedules: %w", err)
	}

	proposed := ProposedLesson{
		ClassID:   schedule.ClassID,
		Day:       schedule.Day,
		TimeSlot:  req.TimeSlot,
		TeacherID: req.TeacherID,
	}
	if conflict, resource := HasConflict(proposed, schedule, all); conflict {
		return NewConflictError(resource, req.TimeSlot, schedule.Day)
	}

	schedule.SetLesson(req.TimeSlot, req.Subject, req.TeacherID)

	s.logger.Info("Lesson added",
		"schedule_id", scheduleID,
		"time_slot", req.TimeSlot,
		"subject", req.Subject,
		"teacher_id", req.TeacherID)
	return nil
}

func (s *scheduleService) RemoveLesson(ctx context.Context, scheduleID int, timeSlot string) error {
	schedule, err := s.repo.Schedule().GetByID(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("schedule %d: %w", scheduleID, err)
	}

	// Idempotent on the slot: removing an absent lesson is not an error.
	schedule.RemoveLesson(timeSlot)
	return nil
}

func (s *scheduleService) View(ctx context.Context, scheduleID int) (models.ScheduleView, error) {
	schedule, err := s.repo.Schedule().GetByID(ctx, scheduleID)
	if err != nil {
		return models.ScheduleView{}, fmt.Errorf("schedule %d: %w", scheduleID, err)
	}
	return schedule.View(), nil
}

func (s *scheduleService) ByClass(ctx context.Context, classID string) ([]models.ScheduleView, error) {
	schedules, err := s.repo.Schedule().ByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules by class: %w", err)
	}
	return views(schedules), nil
}

func (s *scheduleService) ByTeacher(ctx context.Context, teacherID int) ([]models.ScheduleView, error) {
	schedules, err := s.repo.Schedule().ByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules by teacher: %w", err)
	}
	return views(schedules), nil
}

func views(schedules []*models.Schedule) []models.ScheduleView {
	out := make([]models.ScheduleView, 0, len(schedules))
	for _, schedule := range schedules {
		out = append(out, schedule.View())
	}
	return out
}
