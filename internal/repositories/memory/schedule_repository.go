package memory

import (
	"context"

	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories"
)

type scheduleRepository struct {
	store *Store
}

func (r *scheduleRepository) Add(ctx context.Context, schedule *models.Schedule) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.schedules[schedule.ID]; ok {
		return repositories.ErrDuplicate
	}
	r.store.schedules[schedule.ID] = schedule
	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id int) (*models.Schedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	schedule, ok := r.store.schedules[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return schedule, nil
}

func (r *scheduleRepository) Remove(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.schedules[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.store.schedules, id)
	return nil
}

func (r *scheduleRepository) List(ctx context.Context) ([]*models.Schedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	schedules := make([]*models.Schedule, 0, len(r.store.schedules))
	for _, id := range sortedIDs(r.store.schedules) {
		schedules = append(schedules, r.store.schedules[id])
	}
	return schedules, nil
}

func (r *scheduleRepository) ByClass(ctx context.Context, classID string) ([]*models.Schedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var schedules []*models.Schedule
	for _, id := range sortedIDs(r.store.schedules) {
		if r.store.schedules[id].ClassID == classID {
			schedules = append(schedules, r.store.schedules[id])
		}
	}
	return schedules, nil
}

func (r *scheduleRepository) ByTeacher(ctx context.Context, teacherID int) ([]*models.Schedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var schedules []*models.Schedule
	for _, id := range sortedIDs(r.store.schedules) {
		schedule := r.store.schedules[id]
		for _, lesson := range schedule.Lessons {
			if lesson.TeacherID == teacherID {
				schedules = append(schedules, schedule)
				break
			}
		}
	}
	return schedules, nil
}

func (r *scheduleRepository) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.schedules), nil
}
