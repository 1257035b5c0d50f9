package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/eduplatform/school-service/internal/events"
	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories/memory"
	"github.com/eduplatform/school-service/internal/validator"
)

type testEnv struct {
	store     *memory.Store
	publisher *events.MockEventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testEnv{
		store:     memory.NewStore(),
		publisher: events.NewMockEventPublisher(logger),
		logger:    logger,
		validator: validator.New(),
	}
}

func (e *testEnv) addStudent(t *testing.T, id int, email, classID string) *models.User {
	t.Helper()
	u, err := models.NewStudent(id, "Student", email, models.HashPassword("x12345"), classID)
	if err != nil {
		t.Fatalf("failed to build student: %v", err)
	}
	if err := e.store.User().Add(context.Background(), u); err != nil {
		t.Fatalf("failed to add student: %v", err)
	}
	return u
}

func (e *testEnv) addTeacher(t *testing.T, id int, email string) *models.User {
	t.Helper()
	u, err := models.NewTeacher(id, "Teacher", email, models.HashPassword("x12345"))
	if err != nil {
		t.Fatalf("failed to build teacher: %v", err)
	}
	if err := e.store.User().Add(context.Background(), u); err != nil {
		t.Fatalf("failed to add teacher: %v", err)
	}
	return u
}

func (e *testEnv) addParent(t *testing.T, id int, email string, children ...int) *models.User {
	t.Helper()
	u, err := models.NewParent(id, "Parent", email, models.HashPassword("x12345"))
	if err != nil {
		t.Fatalf("failed to build parent: %v", err)
	}
	u.Parent.Children = append(u.Parent.Children, children...)
	if err := e.store.User().Add(context.Background(), u); err != nil {
		t.Fatalf("failed to add parent: %v", err)
	}
	return u
}

func (e *testEnv) addAdmin(t *testing.T, id int, email string) *models.User {
	t.Helper()
	u, err := models.NewAdmin(id, "Admin", email, models.HashPassword("x12345"))
	if err != nil {
		t.Fatalf("failed to build admin: %v", err)
	}
	if err := e.store.User().Add(context.Background(), u); err != nil {
		t.Fatalf("failed to add admin: %v", err)
	}
	return u
}

func (e *testEnv) notificationService() NotificationService {
	return NewNotificationService(e.store, e.publisher, e.logger, e.validator)
}
