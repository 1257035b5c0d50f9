package models

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Notification is a directed message to a user about a domain event.
// Its only lifecycle transition is Created -> MarkedRead.
type Notification struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Message     string    `json:"message" gorm:"not null;type:text"`
	RecipientID int       `json:"recipient_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	Priority    Priority  `json:"priority" gorm:"not null;size:10"`
	IsRead      bool      `json:"is_read" gorm:"not null;default:false"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NewNotification validates and creates a notification. A zero priority
// defaults to Medium.
func NewNotification(id int, message string, recipientID int, priority Priority) (*Notification, error) {
	if id <= 0 {
		return nil, fmt.Errorf("notification id must be a positive integer, got %d", id)
	}
	if recipientID <= 0 {
		return nil, fmt.Errorf("recipient id must be a positive integer, got %d", recipientID)
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("message cannot be empty")
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("invalid priority %q", priority)
	}
	return &Notification{
		ID:          id,
		Message:     message,
		RecipientID: recipientID,
		CreatedAt:   time.Now().UTC(),
		Priority:    priority,
	}, nil
}

// MarkRead transitions the notification to its read state. Idempotent.
func (n *Notification) MarkRead() {
	n.IsRead = true
}
