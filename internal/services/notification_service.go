package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/eduplatform/school-service/internal/events"
	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories"
	"github.com/eduplatform/school-service/internal/validator"
)

type notificationService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator

	// now is swappable in tests.
	now func() time.Time
}

func NewNotificationService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) NotificationService {
	return &notificationService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      validator,
		now:            time.Now,
	}
}

func (s *notificationService) Deliver(ctx context.Context, message string, recipientID int, priority models.Priority) (*models.Notification, error) {
	id, err := s.repo.Notification().NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate notification id: %w", err)
	}

	notification, err := models.NewNotification(id, message, recipientID, priority)
	if err != nil {
		return nil, fmt.Errorf("failed to construct notification: %w", err)
	}

	if err := s.repo.Notification().Add(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to add notification %d: %w", id, err)
	}

	// Delivery to the recipient's snapshot list. The notification is
	// already persisted at this point; a missing recipient leaves that
	// partial state in place (no rollback anywhere in the system).
	recipient, err := s.repo.User().GetByID(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("recipient %d: %w", recipientID, err)
	}
	recipient.AddNotification(*notification)

	event := events.NewEvent(events.TypeNotificationDelivered, notification)
	if err := s.eventPublisher.Publish(ctx, events.TopicNotifications, event); err != nil {
		s.logger.Error("Failed to publish delivery event",
			"notification_id", notification.ID,
			"error", err)
	}

	s.logger.Info("Notification delivered",
		"notification_id", notification.ID,
		"recipient_id", recipientID,
		"priority", notification.Priority)

	return notification, nil
}

// ChildNotifications implements the parent notification rules.
//
// Deduplication is textual on purpose: a candidate is skipped when any
// already-collected message contains its rendered marker. Two distinct
// events that render identical text therefore collapse into one
// notification. That is the contract; do not replace it with a
// structured dedup key without changing the product.
func (s *notificationService) ChildNotifications(ctx context.Context, parentID, childID int, generateNew bool) ([]models.Notification, error) {
	parent, err := s.repo.User().GetByID(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("parent %d: %w", parentID, err)
	}
	if parent.Role != models.RoleParent || parent.Parent == nil {
		return nil, NewValidationError("parent_id", "user is not a parent", parentID)
	}
	if !parent.HasChild(childID) {
		return nil, NewValidationError("child_id", "is not linked to this parent", childID)
	}

	existing, err := s.repo.Notification().ByUser(ctx, parentID, repositories.NotificationFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}

	// The child linkage lives in the message text, not a foreign key.
	childMarker := fmt.Sprintf("Child %d", childID)
	var collected []models.Notification
	for _, n := range existing {
		if strings.Contains(n.Message, childMarker) {
			collected = append(collected, *n)
		}
	}

	if !generateNew {
		return collected, nil
	}

	collected, err = s.generateLowGradeNotifications(ctx, parentID, childID, collected)
	if err != nil {
		return nil, err
	}
	return s.generateDeadlineNotifications(ctx, parentID, childID, collected)
}

func (s *notificationService) generateLowGradeNotifications(ctx context.Context, parentID, childID int, collected []models.Notification) ([]models.Notification, error) {
	grades, err := s.repo.Grade().ByStudent(ctx, childID, repositories.GradeFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to query grades: %w", err)
	}

	for _, grade := range grades {
		if grade.Value > 3 {
			continue
		}
		marker := fmt.Sprintf("Low grade (%d) in %s", grade.Value, grade.Subject)
		if anyMessageContains(collected, marker) {
			continue
		}

		notification, err := s.Deliver(ctx,
			fmt.Sprintf("Child %d: %s", childID, marker),
			parentID, models.PriorityHigh)
		if err != nil {
			return nil, err
		}
		collected = append(collected, *notification)
	}
	return collected, nil
}

func (s *notificationService) generateDeadlineNotifications(ctx context.Context, parentID, childID int, collected []models.Notification) ([]models.Notification, error) {
	student, err := s.repo.User().GetByID(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("child %d: %w", childID, err)
	}
	if student.Student == nil {
		return collected, nil
	}

	assignments, err := s.repo.Assignment().ByStudent(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}

	now := s.now()
	for _, assignment := range assignments {
		if !assignment.Deadline.Before(now) {
			continue
		}
		if status, ok := student.Student.Assignments[assignment.ID]; ok && status.Status == models.SubmissionSubmitted {
			continue
		}
		marker := fmt.Sprintf("Missed deadline for %s", assignment.Title)
		if anyMessageContains(collected, marker) {
			continue
		}

		notification, err := s.Deliver(ctx,
			fmt.Sprintf("Child %d: Missed deadline for %s in %s", childID, assignment.Title, assignment.Subject),
			parentID, models.PriorityMedium)
		if err != nil {
			return nil, err
		}
		collected = append(collected, *notification)
	}
	return collected, nil
}

func anyMessageContains(notifications []models.Notification, marker string) bool {
	for _, n := range notifications {
		if strings.Contains(n.Message, marker) {
			return true
		}
	}
	return false
}

func (s *notificationService) DeadlineReminders(ctx context.Context, studentID int) (int, error) {
	student, err := s.repo.User().GetByID(ctx, studentID)
	if err != nil {
		return 0, fmt.Errorf("student %d: %w", studentID, err)
	}
	if student.Student == nil {
		return 0, NewValidationError("student_id", "user is not a student", studentID)
	}

	assignments, err := s.repo.Assignment().ByStudent(ctx, studentID)
	if err != nil {
		return 0, fmt.Errorf("failed to query assignments: %w", err)
	}

	now := s.now()
	sent := 0
	for _, assignment := range assignments {
		if assignment.Deadline.Before(now) || assignment.Deadline.After(now.Add(24*time.Hour)) {
			continue
		}
		if status, ok := student.Student.Assignments[assignment.ID]; ok && status.Status == models.SubmissionSubmitted {
			continue
		}

		message := fmt.Sprintf("Reminder: Assignment '%s' is due tomorrow.", assignment.Title)
		if _, err := s.Deliver(ctx, message, studentID, models.PriorityHigh); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID int) error {
	notification, err := s.repo.Notification().GetByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("notification %d: %w", notificationID, err)
	}
	notification.MarkRead()
	return nil
}

func (s *notificationService) ByUser(ctx context.Context, userID int, unreadOnly bool, priority models.Priority) ([]*models.Notification, error) {
	return s.repo.Notification().ByUser(ctx, userID, repositories.NotificationFilters{
		UnreadOnly: unreadOnly,
		Priority:   priority,
	})
}
