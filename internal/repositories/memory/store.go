// Package memory implements the repositories over plain in-process
// maps. This is the system's primary store, not a test double: the
// platform is a single-process simulation with no durability promises.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories"
)

// Store keeps every collection in a map keyed by entity id. A single
// RWMutex guards all maps; the service is single-actor by contract and
// the lock only keeps the demo harness honest.
type Store struct {
	mu sync.RWMutex

	users         map[int]*models.User
	schedules     map[int]*models.Schedule
	assignments   map[int]*models.Assignment
	grades        map[int]*models.Grade
	notifications map[int]*models.Notification
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:         make(map[int]*models.User),
		schedules:     make(map[int]*models.Schedule),
		assignments:   make(map[int]*models.Assignment),
		grades:        make(map[int]*models.Grade),
		notifications: make(map[int]*models.Notification),
	}
}

func (s *Store) User() repositories.UserRepository                 { return &userRepository{store: s} }
func (s *Store) Schedule() repositories.ScheduleRepository         { return &scheduleRepository{store: s} }
func (s *Store) Assignment() repositories.AssignmentRepository     { return &assignmentRepository{store: s} }
func (s *Store) Grade() repositories.GradeRepository               { return &gradeRepository{store: s} }
func (s *Store) Notification() repositories.NotificationRepository { return &notificationRepository{store: s} }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() error { return nil }

// sortedIDs returns the keys of m in ascending order so that List
// results are deterministic.
func sortedIDs[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// nextID returns one past the highest id in use. Safer than count+1,
// which can collide after removals.
func nextID[V any](m map[int]V) int {
	max := 0
	for id := range m {
		if id > max {
			max = id
		}
	}
	return max + 1
}
