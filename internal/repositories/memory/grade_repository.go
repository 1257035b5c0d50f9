package memory

import (
	"context"
	"time"

	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories"
)

type gradeRepository struct {
	store *Store
}

func (r *gradeRepository) Add(ctx context.Context, grade *models.Grade) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.grades[grade.ID]; ok {
		return repositories.ErrDuplicate
	}
	r.store.grades[grade.ID] = grade
	return nil
}

func (r *gradeRepository) GetByID(ctx context.Context, id int) (*models.Grade, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	grade, ok := r.store.grades[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return grade, nil
}

func (r *gradeRepository) Remove(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.grades[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.store.grades, id)
	return nil
}

func (r *gradeRepository) List(ctx context.Context) ([]*models.Grade, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	grades := make([]*models.Grade, 0, len(r.store.grades))
	for _, id := range sortedIDs(r.store.grades) {
		grades = append(grades, r.store.grades[id])
	}
	return grades, nil
}

func (r *gradeRepository) ByStudent(ctx context.Context, studentID int, filters repositories.GradeFilters) ([]*models.Grade, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var grades []*models.Grade
	for _, id := range sortedIDs(r.store.grades) {
		grade := r.store.grades[id]
		if grade.StudentID != studentID {
			continue
		}
		if filters.Subject != "" && grade.Subject != filters.Subject {
			continue
		}
		grades = append(grades, grade)
	}
	return grades, nil
}

func (r *gradeRepository) BySubject(ctx context.Context, subject string) ([]*models.Grade, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var grades []*models.Grade
	for _, id := range sortedIDs(r.store.grades) {
		if r.store.grades[id].Subject == subject {
			grades = append(grades, r.store.grades[id])
		}
	}
	return grades, nil
}

func (r *gradeRepository) ByWeek(ctx context.Context, weekStart time.Time) ([]*models.Grade, error) {
	return r.between(weekStart, weekStart.AddDate(0, 0, 7))
}

func (r *gradeRepository) ByMonth(ctx context.Context, year int, month time.Month) ([]*models.Grade, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return r.between(start, start.AddDate(0, 1, 0))
}

func (r *gradeRepository) between(from, to time.Time) ([]*models.Grade, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var grades []*models.Grade
	for _, id := range sortedIDs(r.store.grades) {
		date := r.store.grades[id].Date
		if !date.Before(from) && date.Before(to) {
			grades = append(grades, r.store.grades[id])
		}
	}
	return grades, nil
}

func (r *gradeRepository) NextID(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return nextID(r.store.grades), nil
}

func (r *gradeRepository) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.grades), nil
}
