package memory

import (
	"context"

	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories"
)

type userRepository struct {
	store *Store
}

func (r *userRepository) Add(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.ID]; ok {
		return repositories.ErrDuplicate
	}
	r.store.users[user.ID] = user
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range sortedIDs(r.store.users) {
		if r.store.users[id].Email == email {
			return r.store.users[id], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepository) Remove(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.store.users, id)
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]*models.User, 0, len(r.store.users))
	for _, id := range sortedIDs(r.store.users) {
		users = append(users, r.store.users[id])
	}
	return users, nil
}

func (r *userRepository) StudentsByClass(ctx context.Context, classID string) ([]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var ids []int
	for _, id := range sortedIDs(r.store.users) {
		user := r.store.users[id]
		if user.Role == models.RoleStudent && user.Student != nil && user.Student.ClassID == classID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *userRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.users[id]
	return ok, nil
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.users), nil
}
