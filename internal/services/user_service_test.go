package services

import (
	"context"
	"errors"
	"testing"

	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories"
)

func newUserService(t *testing.T, env *testEnv) UserService {
	t.Helper()
	return NewUserService(env.store, env.logger, env.validator)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newUserService(t, env)

	t.Run("each role gets its payload", func(t *testing.T) {
		cases := []struct {
			req   CreateUserRequest
			check func(*models.User) bool
		}{
			{
				CreateUserRequest{ID: 1, FullName: "Admin", Email: "admin@example.com", Password: "secret1", Role: models.RoleAdmin},
				func(u *models.User) bool { return u.Student == nil && u.Teacher == nil && u.Parent == nil },
			},
			{
				CreateUserRequest{ID: 2, FullName: "Teacher", Email: "teacher@example.com", Password: "secret1", Role: models.RoleTeacher},
				func(u *models.User) bool { return u.Teacher != nil },
			},
			{
				CreateUserRequest{ID: 3, FullName: "Student", Email: "student@example.com", Password: "secret1", Role: models.RoleStudent, ClassID: "9A"},
				func(u *models.User) bool { return u.Student != nil && u.Student.ClassID == "9A" },
			},
			{
				CreateUserRequest{ID: 4, FullName: "Parent", Email: "parent@example.com", Password: "secret1", Role: models.RoleParent},
				func(u *models.User) bool { return u.Parent != nil },
			},
		}
		for _, tc := range cases {
			user, err := svc.Register(ctx, tc.req)
			if err != nil {
				t.Fatalf("Register %s failed: %v", tc.req.Role, err)
			}
			if !tc.check(user) {
				t.Errorf("unexpected payload for %s: %+v", tc.req.Role, user)
			}
			if user.PasswordHash == "secret1" || len(user.PasswordHash) != 64 {
				t.Errorf("password must be stored as a hex digest, got %q", user.PasswordHash)
			}
		}
	})

	t.Run("student without class id", func(t *testing.T) {
		_, err := svc.Register(ctx, CreateUserRequest{ID: 5, FullName: "Student", Email: "s2@example.com", Password: "secret1", Role: models.RoleStudent})
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := svc.Register(ctx, CreateUserRequest{ID: 1, FullName: "Admin", Email: "other@example.com", Password: "secret1", Role: models.RoleAdmin})
		if !repositories.IsDuplicateError(err) {
			t.Errorf("expected duplicate error, got %v", err)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newUserService(t, env)

	if _, err := svc.Register(ctx, CreateUserRequest{ID: 1, FullName: "Admin", Email: "admin@example.com", Password: "secret1", Role: models.RoleAdmin}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("success", func(t *testing.T) {
		auth, err := svc.Authenticate(ctx, "admin@example.com", "secret1")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if auth.UserID != 1 || auth.Role != models.RoleAdmin {
			t.Errorf("unexpected result %+v", auth)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "admin@example.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "ghost@example.com", "secret1")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestRemoveUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newUserService(t, env)

	env.addAdmin(t, 1, "admin@example.com")
	env.addTeacher(t, 2, "teacher@example.com")
	env.addStudent(t, 3, "student@example.com", "9A")

	t.Run("non-admin actor", func(t *testing.T) {
		err := svc.RemoveUser(ctx, 2, 3)
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("admin actor", func(t *testing.T) {
		if err := svc.RemoveUser(ctx, 1, 3); err != nil {
			t.Fatalf("RemoveUser failed: %v", err)
		}
		if _, err := svc.Get(ctx, 3); !repositories.IsNotFoundError(err) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

func TestChildLinks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newUserService(t, env)

	parent := env.addParent(t, 1, "parent@example.com")
	env.addStudent(t, 2, "student@example.com", "9A")
	env.addTeacher(t, 3, "teacher@example.com")

	if err := svc.AddChild(ctx, 1, 2); err != nil {
		t.Fatalf("AddChild failed: %v", err)
	}
	if !parent.HasChild(2) {
		t.Error("expected child 2 linked")
	}

	t.Run("double link", func(t *testing.T) {
		if err := svc.AddChild(ctx, 1, 2); !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("child must be a student", func(t *testing.T) {
		if err := svc.AddChild(ctx, 1, 3); !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("parent must be a parent", func(t *testing.T) {
		if err := svc.AddChild(ctx, 3, 2); !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("unlink", func(t *testing.T) {
		if err := svc.RemoveChild(ctx, 1, 2); err != nil {
			t.Fatalf("RemoveChild failed: %v", err)
		}
		if parent.HasChild(2) {
			t.Error("expected child 2 unlinked")
		}
		if err := svc.RemoveChild(ctx, 1, 2); !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestUpdateProfileService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newUserService(t, env)

	user := env.addAdmin(t, 1, "admin@example.com")

	if err := svc.UpdateProfile(ctx, 1, UpdateProfileRequest{FullName: "Renamed"}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if user.FullName != "Renamed" || user.Email != "admin@example.com" {
		t.Errorf("unexpected user %+v", user)
	}

	if err := svc.UpdateProfile(ctx, 1, UpdateProfileRequest{Email: "broken"}); !IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
