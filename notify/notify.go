// Package notify records user-facing events and fans them out to live
// WebSocket subscribers. Emission is fire-and-forget: lifecycle and ledger
// operations never fail because a notification could not be delivered.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"flexwage/apperr"
	"flexwage/models"
	"flexwage/rdx"
	"flexwage/store"
	"flexwage/utils"
)

const channel = "notify-events"

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Create stamps and persists a notification, unread.
func (s *Service) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.NotificationID = utils.GetUUID()
	n.IsRead = false
	n.CreatedAt = time.Now()

	if err := s.store.Notifications.Put(ctx, n.NotificationID, n); err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.store.Notifications.Filter(ctx, func(n models.Notification) bool {
		return n.UserID == userID
	})
}

// MarkRead flips the read flag; the only mutation a notification allows.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	n, err := s.store.Notifications.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("notification not found: %w", apperr.ErrNotFound)
	}
	n.IsRead = true
	return s.store.Notifications.Put(ctx, id, n)
}

// Push stores a notification for userID and publishes it for live delivery.
// Errors are logged, never returned.
func (s *Service) Push(ctx context.Context, userID string, typ models.NotificationType, title, message, shiftID string) {
	n, err := s.Create(ctx, models.Notification{
		UserID:         userID,
		Type:           typ,
		Title:          title,
		Message:        message,
		RelatedShiftID: shiftID,
	})
	if err != nil {
		log.Printf("notify: store failed for user %s: %v", userID, err)
		return
	}

	data, err := json.Marshal(n)
	if err != nil {
		log.Printf("notify: marshal failed: %v", err)
		return
	}
	if err := rdx.Conn.Publish(context.Background(), channel, data).Err(); err != nil {
		log.Printf("notify: publish failed: %v", err)
	}
}
