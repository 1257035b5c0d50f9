package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/eduplatform/school-service/internal/events"
	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories"
)

func newAssignmentService(t *testing.T, env *testEnv) AssignmentService {
	t.Helper()
	return NewAssignmentService(env.store, env.publisher, env.logger, env.validator, env.notificationService())
}

func TestAssignmentCreate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newAssignmentService(t, env)

	classmate := env.addStudent(t, 1, "a@example.com", "9A")
	other := env.addStudent(t, 2, "b@example.com", "9B")

	assignment, err := svc.Create(ctx, CreateAssignmentRequest{
		ID: 1, Title: "Homework", Deadline: time.Now().Add(48 * time.Hour),
		Subject: "Math", TeacherID: 3, ClassID: "9A",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if assignment.Difficulty != models.DifficultyMedium {
		t.Errorf("expected default difficulty, got %s", assignment.Difficulty)
	}

	t.Run("registers pending entries on class students", func(t *testing.T) {
		st, ok := classmate.Student.Assignments[1]
		if !ok || st.Status != models.SubmissionPending {
			t.Errorf("expected pending entry, got %+v", st)
		}
		if _, ok := other.Student.Assignments[1]; ok {
			t.Error("student of another class must not be registered")
		}
	})

	t.Run("rejects malformed request", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateAssignmentRequest{ID: 2, Title: "Homework", Subject: "Math", TeacherID: 3, ClassID: "bad", Deadline: time.Now()})
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestAssignmentSubmit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newAssignmentService(t, env)

	student := env.addStudent(t, 1, "a@example.com", "9A")
	env.addTeacher(t, 3, "t@example.com")

	if _, err := svc.Create(ctx, CreateAssignmentRequest{
		ID: 1, Title: "Homework", Deadline: time.Now().Add(48 * time.Hour),
		Subject: "Math", TeacherID: 3, ClassID: "9A",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ok, err := svc.Submit(ctx, 1, 1, "my answer")
	if err != nil || !ok {
		t.Fatalf("Submit: got %v, %v", ok, err)
	}
	st := student.Student.Assignments[1]
	if st.Status != models.SubmissionSubmitted || st.Content != "my answer" {
		t.Errorf("unexpected student state %+v", st)
	}

	t.Run("first submission wins", func(t *testing.T) {
		ok, err := svc.Submit(ctx, 1, 1, "revised")
		if err != nil || ok {
			t.Errorf("expected false, got %v, %v", ok, err)
		}
		if student.Student.Assignments[1].Content != "my answer" {
			t.Error("repeated submission must not overwrite")
		}
	})

	t.Run("non-student submitter", func(t *testing.T) {
		if _, err := svc.Submit(ctx, 1, 3, "answer"); !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown assignment", func(t *testing.T) {
		_, err := svc.Submit(ctx, 42, 1, "answer")
		if !repositories.IsNotFoundError(err) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

func TestAssignmentSetGrade(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newAssignmentService(t, env)

	student := env.addStudent(t, 1, "a@example.com", "9A")

	if _, err := svc.Create(ctx, CreateAssignmentRequest{
		ID: 1, Title: "Math Homework", Deadline: time.Now().Add(48 * time.Hour),
		Subject: "Math", TeacherID: 3, ClassID: "9A",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("no submission yet", func(t *testing.T) {
		ok, err := svc.SetGrade(ctx, 1, 1, 5)
		if err != nil || ok {
			t.Errorf("expected false, got %v, %v", ok, err)
		}
	})

	if _, err := svc.Submit(ctx, 1, 1, "answer"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	t.Run("out of range value", func(t *testing.T) {
		ok, err := svc.SetGrade(ctx, 1, 1, 6)
		if err != nil || ok {
			t.Errorf("expected false, got %v, %v", ok, err)
		}
	})

	env.publisher.ClearEvents()
	ok, err := svc.SetGrade(ctx, 1, 1, 5)
	if err != nil || !ok {
		t.Fatalf("SetGrade: got %v, %v", ok, err)
	}

	t.Run("persists a grade record", func(t *testing.T) {
		grades, err := env.store.Grade().ByStudent(ctx, 1, repositories.GradeFilters{Subject: "Math"})
		if err != nil || len(grades) != 1 {
			t.Fatalf("expected 1 grade, got %v, %v", grades, err)
		}
		if grades[0].Value != 5 || grades[0].TeacherID != 3 {
			t.Errorf("unexpected grade %+v", grades[0])
		}
	})

	t.Run("updates the student's latest subject grade", func(t *testing.T) {
		if student.Student.Grades["Math"] != 5 {
			t.Errorf("expected latest Math grade 5, got %d", student.Student.Grades["Math"])
		}
	})

	t.Run("notifies the student", func(t *testing.T) {
		if len(student.Notifications) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(student.Notifications))
		}
		want := "Your assignment 'Math Homework' has been graded with 5."
		if student.Notifications[0].Message != want {
			t.Errorf("expected %q, got %q", want, student.Notifications[0].Message)
		}
	})

	t.Run("publishes delivery and grading events", func(t *testing.T) {
		var types []string
		for _, e := range env.publisher.GetPublishedEvents() {
			types = append(types, e.Type)
		}
		joined := strings.Join(types, ",")
		if !strings.Contains(joined, events.TypeNotificationDelivered) || !strings.Contains(joined, events.TypeAssignmentGraded) {
			t.Errorf("unexpected event types %v", types)
		}
	})

	t.Run("status reflects the grade", func(t *testing.T) {
		status, err := svc.StatusFor(ctx, 1, 1)
		if err != nil {
			t.Fatalf("StatusFor failed: %v", err)
		}
		if !status.Submitted || status.Grade == nil || *status.Grade != 5 {
			t.Errorf("unexpected status %+v", status)
		}

		aggregate, err := svc.Status(ctx, 1)
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}
		if aggregate.TotalSubmissions != 1 || aggregate.TotalGrades != 1 {
			t.Errorf("unexpected aggregate %+v", aggregate)
		}
	})
}

func TestAssignmentQueries(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newAssignmentService(t, env)

	env.addStudent(t, 1, "a@example.com", "9A")

	if _, err := svc.Create(ctx, CreateAssignmentRequest{
		ID: 1, Title: "Homework", Deadline: time.Now().Add(48 * time.Hour),
		Subject: "Math", TeacherID: 3, ClassID: "9A",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, CreateAssignmentRequest{
		ID: 2, Title: "Essay", Deadline: time.Now().Add(96 * time.Hour),
		Subject: "Literature", TeacherID: 3, ClassID: "9B",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	byClass, err := svc.ByClass(ctx, "9A")
	if err != nil || len(byClass) != 1 || byClass[0].ID != 1 {
		t.Errorf("ByClass: expected assignment 1, got %v, %v", byClass, err)
	}

	byStudent, err := svc.ByStudent(ctx, 1)
	if err != nil || len(byStudent) != 1 || byStudent[0].ID != 1 {
		t.Errorf("ByStudent: expected assignment 1, got %v, %v", byStudent, err)
	}
}
