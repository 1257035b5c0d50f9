package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories"
	"github.com/eduplatform/school-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *userService) Register(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if errs := s.validator.Validate(&req); errs != nil {
		return nil, errs
	}

	hash := models.HashPassword(req.Password)

	var (
		user *models.User
		err  error
	)
	switch req.Role {
	case models.RoleAdmin:
		user, err = models.NewAdmin(req.ID, req.FullName, req.Email, hash)
	case models.RoleTeacher:
		user, err = models.NewTeacher(req.ID, req.FullName, req.Email, hash)
	case models.RoleStudent:
		user, err = models.NewStudent(req.ID, req.FullName, req.Email, hash, req.ClassID)
	case models.RoleParent:
		user, err = models.NewParent(req.ID, req.FullName, req.Email, hash)
	default:
		return nil, NewValidationError("role", "must be Admin, Teacher, Student or Parent", req.Role)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to construct user: %w", err)
	}

	if err := s.repo.User().Add(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to add user %d: %w", user.ID, err)
	}

	s.logger.Info("User registered",
		"user_id", user.ID,
		"role", user.Role)

	return user, nil
}

func (s *userService) Get(ctx context.Context, id int) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", id, err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.User().List(ctx)
}

func (s *userService) UpdateProfile(ctx context.Context, userID int, req UpdateProfileRequest) error {
	if errs := s.validator.Validate(&req); errs != nil {
		return errs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user %d: %w", userID, err)
	}

	if err := user.UpdateProfile(req.FullName, req.Email); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Profile updated", "user_id", userID)
	return nil
}

// Authenticate compares the password's one-way hash against the stored
// digest. No sessions, no rate limiting.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("User authenticated", "user_id", user.ID, "role", user.Role)
	return &AuthResult{UserID: user.ID, Role: user.Role}, nil
}

func (s *userService) RemoveUser(ctx context.Context, actorID, userID int) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}

	if err := s.repo.User().Remove(ctx, userID); err != nil {
		return fmt.Errorf("user %d: %w", userID, err)
	}

	s.logger.Info("User removed", "user_id", userID, "actor_id", actorID)
	return nil
}

func (s *userService) AddChild(ctx context.Context, parentID, childID int) error {
	parent, _, err := s.parentAndChild(ctx, parentID, childID)
	if err != nil {
		return err
	}

	if parent.HasChild(childID) {
		return NewValidationError("child_id", "is already linked to this parent", childID)
	}

	parent.Parent.Children = append(parent.Parent.Children, childID)
	s.logger.Info("Child linked to parent", "parent_id", parentID, "child_id", childID)
	return nil
}

func (s *userService) RemoveChild(ctx context.Context, parentID, childID int) error {
	parent, _, err := s.parentAndChild(ctx, parentID, childID)
	if err != nil {
		return err
	}

	if !parent.HasChild(childID) {
		return NewValidationError("child_id", "is not linked to this parent", childID)
	}

	children := parent.Parent.Children[:0]
	for _, id := range parent.Parent.Children {
		if id != childID {
			children = append(children, id)
		}
	}
	parent.Parent.Children = children

	s.logger.Info("Child unlinked from parent", "parent_id", parentID, "child_id", childID)
	return nil
}

func (s *userService) parentAndChild(ctx context.Context, parentID, childID int) (*models.User, *models.User, error) {
	parent, err := s.repo.User().GetByID(ctx, parentID)
	if err != nil {
		return nil, nil, fmt.Errorf("parent %d: %w", parentID, err)
	}
	if parent.Role != models.RoleParent || parent.Parent == nil {
		return nil, nil, NewValidationError("parent_id", "user is not a parent", parentID)
	}

	child, err := s.repo.User().GetByID(ctx, childID)
	if err != nil {
		return nil, nil, fmt.Errorf("child %d: %w", childID, err)
	}
	if child.Role != models.RoleStudent {
		return nil, nil, NewValidationError("child_id", "user is not a student", childID)
	}
	return parent, child, nil
}

func (s *userService) requireAdmin(ctx context.Context, actorID int) error {
	actor, err := s.repo.User().GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("actor %d: %w", actorID, err)
	}
	if actor.Role != models.RoleAdmin {
		return NewValidationError("actor_id", "operation requires an admin", actorID)
	}
	return nil
}
