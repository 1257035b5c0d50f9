package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/eduplatform/school-service/internal/events"
	"github.com/eduplatform/school-service/internal/repositories"
	"github.com/eduplatform/school-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager.
type ServiceManagerConfig struct {
	ExportDir    string
	SQLiteDBName string
}

// serviceManager implements ServiceManager.
type serviceManager struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	config         ServiceManagerConfig

	userService         UserService
	scheduleService     ScheduleService
	assignmentService   AssignmentService
	gradeService        GradeService
	notificationService NotificationService
	exportService       ExportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies
// wired explicitly. No service ever constructs its own storage.
func NewServiceManager(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      validator,
		config:         config,
	}
}

// NewDefaultServiceManager creates a service manager with default
// export locations.
func NewDefaultServiceManager(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) ServiceManager {
	return NewServiceManager(repo, eventPublisher, logger, validator, ServiceManagerConfig{
		ExportDir:    "exports",
		SQLiteDBName: "eduplatform",
	})
}

func (m *serviceManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := m.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository not reachable: %w", err)
	}

	m.notificationService = NewNotificationService(m.repo, m.eventPublisher, m.logger, m.validator)
	m.userService = NewUserService(m.repo, m.logger, m.validator)
	m.scheduleService = NewScheduleService(m.repo, m.logger, m.validator, m.notificationService)
	m.assignmentService = NewAssignmentService(m.repo, m.eventPublisher, m.logger, m.validator, m.notificationService)
	m.gradeService = NewGradeService(m.repo, m.logger, m.validator)
	m.exportService = NewExportService(m.repo, m.logger, m.config.ExportDir, m.config.SQLiteDBName)

	m.initialized = true
	m.logger.Info("Services initialized")
	return nil
}

func (m *serviceManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shutdown {
		return nil
	}
	m.shutdown = true

	if err := m.eventPublisher.Close(); err != nil {
		return fmt.Errorf("failed to close event publisher: %w", err)
	}
	if err := m.repo.Close(); err != nil {
		return fmt.Errorf("failed to close repository: %w", err)
	}

	m.logger.Info("Services shut down")
	return nil
}

func (m *serviceManager) User() UserService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userService
}

func (m *serviceManager) Schedule() ScheduleService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scheduleService
}

func (m *serviceManager) Assignment() AssignmentService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assignmentService
}

func (m *serviceManager) Grade() GradeService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gradeService
}

func (m *serviceManager) Notification() NotificationService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.notificationService
}

func (m *serviceManager) Export() ExportService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exportService
}
