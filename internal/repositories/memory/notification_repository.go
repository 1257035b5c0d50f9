package memory

import (
	"context"

	"github.com/eduplatform/school-service/internal/models"
	"github.com/eduplatform/school-service/internal/repositories"
)

type notificationRepository struct {
	store *Store
}

func (r *notificationRepository) Add(ctx context.Context, notification *models.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.notifications[notification.ID]; ok {
		return repositories.ErrDuplicate
	}
	r.store.notifications[notification.ID] = notification
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id int) (*models.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	notification, ok := r.store.notifications[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return notification, nil
}

func (r *notificationRepository) Remove(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.notifications[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.store.notifications, id)
	return nil
}

func (r *notificationRepository) List(ctx context.Context) ([]*models.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	notifications := make([]*models.Notification, 0, len(r.store.notifications))
	for _, id := range sortedIDs(r.store.notifications) {
		notifications = append(notifications, r.store.notifications[id])
	}
	return notifications, nil
}

func (r *notificationRepository) ByUser(ctx context.Context, userID int, filters repositories.NotificationFilters) ([]*models.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var notifications []*models.Notification
	for _, id := range sortedIDs(r.store.notifications) {
		notification := r.store.notifications[id]
		if notification.RecipientID != userID {
			continue
		}
		if !matches(notification, filters) {
			continue
		}
		notifications = append(notifications, notification)
	}
	return notifications, nil
}

func (r *notificationRepository) Filter(ctx context.Context, filters repositories.NotificationFilters) ([]*models.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var notifications []*models.Notification
	for _, id := range sortedIDs(r.store.notifications) {
		if matches(r.store.notifications[id], filters) {
			notifications = append(notifications, r.store.notifications[id])
		}
	}
	return notifications, nil
}

func matches(n *models.Notification, filters repositories.NotificationFilters) bool {
	if filters.UnreadOnly && n.IsRead {
		return false
	}
	if filters.Priority != "" && n.Priority != filters.Priority {
		return false
	}
	return true
}

func (r *notificationRepository) NextID(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return nextID(r.store.notifications), nil
}

func (r *notificationRepository) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.notifications), nil
}
