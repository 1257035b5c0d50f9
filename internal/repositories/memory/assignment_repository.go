package memory

import (
	"context"
	"time"

	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories"
)

type assignmentRepository struct {
	store *Store
}

func (r *assignmentRepository) Add(ctx context.Context, assignment *models.Assignment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.assignments[assignment.ID]; ok {
		return repositories.ErrDuplicate
	}
	r.store.assignments[assignment.ID] = assignment
	return nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id int) (*models.Assignment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	assignment, ok := r.store.assignments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return assignment, nil
}

func (r *assignmentRepository) Remove(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.assignments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.store.assignments, id)
	return nil
}

func (r *assignmentRepository) List(ctx context.Context) ([]*models.Assignment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	assignments := make([]*models.Assignment, 0, len(r.store.assignments))
	for _, id := range sortedIDs(r.store.assignments) {
		assignments = append(assignments, r.store.assignments[id])
	}
	return assignments, nil
}

func (r *assignmentRepository) ByClass(ctx context.Context, classID string) ([]*models.Assignment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var assignments []*models.Assignment
	for _, id := range sortedIDs(r.store.assignments) {
		if r.store.assignments[id].ClassID == classID {
			assignments = append(assignments, r.store.assignments[id])
		}
	}
	return assignments, nil
}

func (r *assignmentRepository) ByStudent(ctx context.Context, studentID int) ([]*models.Assignment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	student, ok := r.store.users[studentID]
	if !ok || student.Student == nil {
		return nil, repositories.ErrNotFound
	}

	var assignments []*models.Assignment
	for _, id := range sortedIDs(r.store.assignments) {
		if _, registered := student.Student.Assignments[id]; registered {
			assignments = append(assignments, r.store.assignments[id])
		}
	}
	return assignments, nil
}

func (r *assignmentRepository) DueBetween(ctx context.Context, from, to time.Time) ([]*models.Assignment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var assignments []*models.Assignment
	for _, id := range sortedIDs(r.store.assignments) {
		deadline := r.store.assignments[id].Deadline
		if !deadline.Before(from) && deadline.Before(to) {
			assignments = append(assignments, r.store.assignments[id])
		}
	}
	return assignments, nil
}

func (r *assignmentRepository) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.assignments), nil
}
