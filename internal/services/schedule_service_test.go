package services

import (
	"context"
	"testing"
)

func newScheduleService(t *testing.T, env *testEnv) ScheduleService {
	t.Helper()
	return NewScheduleService(env.store, env.logger, env.validator, env.notificationService())
}

func TestScheduleCreate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newScheduleService(t, env)

	student := env.addStudent(t, 1, "a@example.com", "9A")
	env.addStudent(t, 2, "b@example.com", "9B")

	schedule, err := svc.Create(ctx, CreateScheduleRequest{ID: 1, ClassID: "9A", Day: "Friday"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if schedule.ClassID != "9A" || len(schedule.Lessons) != 0 {
		t.Errorf("unexpected schedule %+v", schedule)
	}

	t.Run("notifies the class students only", func(t *testing.T) {
		if len(student.Notifications) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(student.Notifications))
		}
		if got := student.Notifications[0].Message; got != "New schedule added for class 9A" {
			t.Errorf("unexpected message %q", got)
		}

		other, err := env.store.User().GetByID(ctx, 2)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if len(other.Notifications) != 0 {
			t.Errorf("student of another class should not be notified")
		}
	})

	t.Run("rejects malformed class id", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateScheduleRequest{ID: 2, ClassID: "A9", Day: "Friday"})
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestScheduleAddLessonConflicts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newScheduleService(t, env)

	for _, req := range []CreateScheduleRequest{
		{ID: 1, ClassID: "9A", Day: "Friday"},
		{ID: 2, ClassID: "9B", Day: "Friday"},
		{ID: 3, ClassID: "9B", Day: "Monday"},
	} {
		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	if err := svc.AddLesson(ctx, 1, AddLessonRequest{TimeSlot: "09:00-09:45", Subject: "Math", TeacherID: 2}); err != nil {
		t.Fatalf("AddLesson failed: %v", err)
	}

	t.Run("same schedule same slot", func(t *testing.T) {
		err := svc.AddLesson(ctx, 1, AddLessonRequest{TimeSlot: "09:00-09:45", Subject: "Physics", TeacherID: 3})
		if !IsConflictError(err) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("same teacher same day same slot in another class", func(t *testing.T) {
		err := svc.AddLesson(ctx, 2, AddLessonRequest{TimeSlot: "09:00-09:45", Subject: "Math", TeacherID: 2})
		if !IsConflictError(err) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("same teacher on another day is fine", func(t *testing.T) {
		if err := svc.AddLesson(ctx, 3, AddLessonRequest{TimeSlot: "09:00-09:45", Subject: "Math", TeacherID: 2}); err != nil {
			t.Fatalf("AddLesson failed: %v", err)
		}
	})

	t.Run("overlapping interval with a different label is fine", func(t *testing.T) {
		if err := svc.AddLesson(ctx, 1, AddLessonRequest{TimeSlot: "09:15-09:30", Subject: "Physics", TeacherID: 3}); err != nil {
			t.Fatalf("AddLesson failed: %v", err)
		}
	})

	t.Run("rejects malformed slot label", func(t *testing.T) {
		err := svc.AddLesson(ctx, 1, AddLessonRequest{TimeSlot: "0900-0945", Subject: "Math", TeacherID: 2})
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestScheduleRemoveLesson(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newScheduleService(t, env)

	if _, err := svc.Create(ctx, CreateScheduleRequest{ID: 1, ClassID: "9A", Day: "Friday"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.AddLesson(ctx, 1, AddLessonRequest{TimeSlot: "09:00-09:45", Subject: "Math", TeacherID: 2}); err != nil {
		t.Fatalf("AddLesson failed: %v", err)
	}

	if err := svc.RemoveLesson(ctx, 1, "09:00-09:45"); err != nil {
		t.Fatalf("RemoveLesson failed: %v", err)
	}
	// Removing the same slot again is not an error.
	if err := svc.RemoveLesson(ctx, 1, "09:00-09:45"); err != nil {
		t.Fatalf("repeated RemoveLesson failed: %v", err)
	}

	view, err := svc.View(ctx, 1)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if len(view.Lessons) != 0 {
		t.Errorf("expected empty schedule, got %v", view.Lessons)
	}
}

func TestScheduleQueries(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newScheduleService(t, env)

	if _, err := svc.Create(ctx, CreateScheduleRequest{ID: 1, ClassID: "9A", Day: "Monday"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, CreateScheduleRequest{ID: 2, ClassID: "9B", Day: "Monday"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.AddLesson(ctx, 2, AddLessonRequest{TimeSlot: "10:00-10:45", Subject: "Math", TeacherID: 7}); err != nil {
		t.Fatalf("AddLesson failed: %v", err)
	}

	byClass, err := svc.ByClass(ctx, "9A")
	if err != nil || len(byClass) != 1 || byClass[0].ID != 1 {
		t.Errorf("ByClass: expected schedule 1, got %v, %v", byClass, err)
	}

	byTeacher, err := svc.ByTeacher(ctx, 7)
	if err != nil || len(byTeacher) != 1 || byTeacher[0].ID != 2 {
		t.Errorf("ByTeacher: expected schedule 2, got %v, %v", byTeacher, err)
	}
}
