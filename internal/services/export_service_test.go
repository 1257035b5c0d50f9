package services

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eduplatform/school-service/internal/models"
)

func TestExportAll(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	dir := t.TempDir()
	svc := NewExportService(env.store, env.logger, dir, "export.db")

	env.addAdmin(t, 1, "admin@example.com")
	env.addTeacher(t, 2, "teacher@example.com")
	student := env.addStudent(t, 3, "student@example.com", "9A")
	student.Student.Grades["Math"] = 5

	grade, err := models.NewGrade(1, 3, "Math", 5, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 2, "good")
	if err != nil {
		t.Fatalf("failed to build grade: %v", err)
	}
	if err := env.store.Grade().Add(ctx, grade); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	schedule, err := models.NewSchedule(1, "9A", "Monday")
	if err != nil {
		t.Fatalf("failed to build schedule: %v", err)
	}
	schedule.SetLesson("09:00-09:45", "Math", 2)
	if err := env.store.Schedule().Add(ctx, schedule); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	t.Run("non-admin actor", func(t *testing.T) {
		if _, err := svc.ExportAll(ctx, 2, "csv"); !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		if _, err := svc.ExportAll(ctx, 1, "pdf"); err == nil {
			t.Error("expected an error for an unsupported format")
		}
	})

	paths, err := svc.ExportAll(ctx, 1, "csv")
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	// users, schedules and grades are populated; assignments and
	// notifications are empty and skipped.
	if len(paths) != 3 {
		t.Fatalf("expected 3 files, got %v", paths)
	}

	var usersPath string
	for _, p := range paths {
		if strings.HasSuffix(p, "_users.csv") {
			usersPath = p
		}
	}
	if usersPath == "" {
		t.Fatalf("no users export among %v", paths)
	}

	f, err := os.Open(usersPath)
	if err != nil {
		t.Fatalf("failed to open %s: %v", usersPath, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to re-parse export: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 users, got %d rows", len(rows))
	}

	if filepath.Dir(usersPath) != dir {
		t.Errorf("export written outside the export dir: %s", usersPath)
	}
}
