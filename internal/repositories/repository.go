package repositories

import "context"

// Repository aggregates all entity repositories over one backing store.
type Repository interface {
	User() UserRepository
	Schedule() ScheduleRepository
	Assignment() AssignmentRepository
	Grade() GradeRepository
	Notification() NotificationRepository

	// Ping verifies the store is usable.
	Ping(ctx context.Context) error

	// Close releases the store.
	Close() error
}
