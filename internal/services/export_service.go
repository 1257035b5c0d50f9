package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/eduplatform/school-service/internal/export"
	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories"
)

type exportService struct {
	repo       repositories.Repository
	logger     *slog.Logger
	exportDir  string
	sqliteName string
}

func NewExportService(repo repositories.Repository, logger *slog.Logger, exportDir, sqliteName string) ExportService {
	return &exportService{
		repo:       repo,
		logger:     logger,
		exportDir:  exportDir,
		sqliteName: sqliteName,
	}
}

func (s *exportService) ExportAll(ctx context.Context, actorID int, format string) ([]string, error) {
	actor, err := s.repo.User().GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("actor %d: %w", actorID, err)
	}
	if actor.Role != models.RoleAdmin {
		return nil, NewValidationError("actor_id", "export requires an admin", actorID)
	}

	parsed, err := export.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	dataset, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	exporter, err := export.NewExporter(s.exportDir, s.sqliteName, s.logger)
	if err != nil {
		return nil, err
	}

	paths, err := exporter.Export(dataset, parsed)
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	s.logger.Info("Export complete",
		"actor_id", actorID,
		"format", format,
		"files", len(paths))
	return paths, nil
}

// snapshot flattens every collection into export tables. Field order
// is fixed per entity so the first record is representative.
func (s *exportService) snapshot(ctx context.Context) (export.Dataset, error) {
	users, err := s.repo.User().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	schedules, err := s.repo.Schedule().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	assignments, err := s.repo.Assignment().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	grades, err := s.repo.Grade().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list grades: %w", err)
	}
	notifications, err := s.repo.Notification().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return export.Dataset{
		usersTable(users),
		schedulesTable(schedules),
		assignmentsTable(assignments),
		gradesTable(grades),
		notificationsTable(notifications),
	}, nil
}

var userFields = []string{"id", "full_name", "email", "password_hash", "role", "created_at"}

func usersTable(users []*models.User) export.Table {
	t := export.Table{Name: "users"}
	for _, u := range users {
		t.Records = append(t.Records, export.Record{
			Fields: userFields,
			Values: map[string]any{
				"id":            u.ID,
				"full_name":     u.FullName,
				"email":         u.Email,
				"password_hash": u.PasswordHash,
				"role":          string(u.Role),
				"created_at":    u.CreatedAt.Format(time.RFC3339),
			},
		})
	}
	return t
}

var scheduleFields = []string{"id", "class_id", "day", "lessons"}

func schedulesTable(schedules []*models.Schedule) export.Table {
	t := export.Table{Name: "schedules"}
	for _, sch := range schedules {
		lessons, _ := json.Marshal(sch.Lessons)
		t.Records = append(t.Records, export.Record{
			Fields: scheduleFields,
			Values: map[string]any{
				"id":       sch.ID,
				"class_id": sch.ClassID,
				"day":      sch.Day,
				"lessons":  string(lessons),
			},
		})
	}
	return t
}

var assignmentFields = []string{"id", "title", "description", "deadline", "subject", "teacher_id", "class_id", "difficulty"}

func assignmentsTable(assignments []*models.Assignment) export.Table {
	t := export.Table{Name: "assignments"}
	for _, a := range assignments {
		t.Records = append(t.Records, export.Record{
			Fields: assignmentFields,
			Values: map[string]any{
				"id":          a.ID,
				"title":       a.Title,
				"description": a.Description,
				"deadline":    a.Deadline.Format(time.RFC3339),
				"subject":     a.Subject,
				"teacher_id":  a.TeacherID,
				"class_id":    a.ClassID,
				"difficulty":  string(a.Difficulty),
			},
		})
	}
	return t
}

var gradeFields = []string{"id", "student_id", "subject", "value", "date", "teacher_id", "comments"}

func gradesTable(grades []*models.Grade) export.Table {
	t := export.Table{Name: "grades"}
	for _, g := range grades {
		t.Records = append(t.Records, export.Record{
			Fields: gradeFields,
			Values: map[string]any{
				"id":         g.ID,
				"student_id": g.StudentID,
				"subject":    g.Subject,
				"value":      g.Value,
				"date":       g.Date.Format(time.RFC3339),
				"teacher_id": g.TeacherID,
				"comments":   strings.Join(g.Comments, "; "),
			},
		})
	}
	return t
}

var notificationFields = []string{"id", "message", "recipient_id", "created_at", "priority", "is_read"}

func notificationsTable(notifications []*models.Notification) export.Table {
	t := export.Table{Name: "notifications"}
	for _, n := range notifications {
		t.Records = append(t.Records, export.Record{
			Fields: notificationFields,
			Values: map[string]any{
				"id":           n.ID,
				"message":      n.Message,
				"recipient_id": n.RecipientID,
				"created_at":   n.CreatedAt.Format(time.RFC3339),
				"priority":     string(n.Priority),
				"is_read":      n.IsRead,
			},
		})
	}
	return t
}
