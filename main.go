package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/eduplatform/school-service/internal/config"
	"github.com/eduplatform/school-service/internal/events"
	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories/memory"
	"github.com/eduplatform/school-service/internal/services"
	"github.com/eduplatform/school-service/internal/validator"
)

// main runs a demonstration scenario against the service layer. The
// platform has no network surface; this harness is the only entry
// point.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	store := memory.NewStore()
	bus := events.NewBus(logger)
	v := validator.New()

	manager := services.NewServiceManager(store, bus, logger, v, services.ServiceManagerConfig{
		ExportDir:    cfg.ExportDir,
		SQLiteDBName: cfg.SQLiteDBName,
	})

	ctx := context.Background()
	if err := manager.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	defer func() {
		if err := manager.Shutdown(ctx); err != nil {
			logger.Error("Shutdown failed", "error", err)
		}
	}()

	// Observe the notification stream.
	messages, err := bus.Subscribe(ctx, events.TopicNotifications)
	if err != nil {
		log.Fatalf("Failed to subscribe to events: %v", err)
	}
	go func() {
		for msg := range messages {
			logger.Debug("Event observed",
				"type", msg.Metadata.Get("type"),
				"payload", string(msg.Payload))
			msg.Ack()
		}
	}()

	if err := runScenario(ctx, manager); err != nil {
		logger.Error("Scenario failed", "error", err)
		os.Exit(1)
	}
}

func runScenario(ctx context.Context, manager services.ServiceManager) error {
	users := manager.User()

	seed := []services.CreateUserRequest{
		{ID: 1, FullName: "Ali Valiev", Email: "ali@example.com", Password: "pass123", Role: models.RoleStudent, ClassID: "9A"},
		{ID: 2, FullName: "Nodira Karimova", Email: "nodira@example.com", Password: "teach123", Role: models.RoleTeacher},
		{ID: 3, FullName: "Olim Valiev", Email: "parent@example.com", Password: "parent123", Role: models.RoleParent},
		{ID: 4, FullName: "Admin User", Email: "admin@example.com", Password: "admin123", Role: models.RoleAdmin},
	}
	for _, req := range seed {
		if _, err := users.Register(ctx, req); err != nil {
			return fmt.Errorf("failed to register %s: %w", req.Email, err)
		}
	}

	teacher, err := users.Get(ctx, 2)
	if err != nil {
		return err
	}
	teacher.Teacher.Subjects["Math"] = struct{}{}
	teacher.Teacher.Subjects["Physics"] = struct{}{}
	teacher.Teacher.Classes["9A"] = struct{}{}

	if err := users.AddChild(ctx, 3, 1); err != nil {
		return err
	}

	auth, err := users.Authenticate(ctx, "admin@example.com", "admin123")
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	fmt.Printf("Admin %d authenticated\n", auth.UserID)

	// Schedule with a deliberate double-booking attempt.
	schedules := manager.Schedule()
	if _, err := schedules.Create(ctx, services.CreateScheduleRequest{ID: 1, ClassID: "9A", Day: "Friday"}); err != nil {
		return err
	}
	if err := schedules.AddLesson(ctx, 1, services.AddLessonRequest{TimeSlot: "09:00-09:45", Subject: "Math", TeacherID: 2}); err != nil {
		return err
	}
	err = schedules.AddLesson(ctx, 1, services.AddLessonRequest{TimeSlot: "09:00-09:45", Subject: "Physics", TeacherID: 2})
	if services.IsConflictError(err) {
		fmt.Printf("Expected conflict: %v\n", err)
	} else if err != nil {
		return err
	}

	// Assignment lifecycle: issue, submit, grade.
	assignments := manager.Assignment()
	if _, err := assignments.Create(ctx, services.CreateAssignmentRequest{
		ID: 1, Title: "Math Homework", Description: "Solve equations 1-10",
		Deadline: time.Now().Add(72 * time.Hour), Subject: "Math",
		TeacherID: 2, ClassID: "9A", Difficulty: models.DifficultyMedium,
	}); err != nil {
		return err
	}
	if _, err := assignments.Submit(ctx, 1, 1, "My solutions"); err != nil {
		return err
	}
	if _, err := assignments.SetGrade(ctx, 1, 1, 5); err != nil {
		return err
	}

	// A low direct grade for the parent notification rules to pick up.
	if _, err := manager.Grade().Record(ctx, services.CreateGradeRequest{
		ID: 2, StudentID: 1, Subject: "Physics", Value: 2, TeacherID: 2,
	}); err != nil {
		return err
	}

	notifications, err := manager.Notification().ChildNotifications(ctx, 3, 1, true)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		fmt.Printf("Parent notification [%s]: %s\n", n.Priority, n.Message)
	}

	progress, err := manager.Grade().StudentProgress(ctx, 1, "")
	if err != nil {
		return err
	}
	fmt.Printf("Student %d completion rate: %.2f%%\n", progress.StudentID, progress.CompletionRate)

	paths, err := manager.Export().ExportAll(ctx, auth.UserID, "all")
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d files\n", len(paths))

	return nil
}
