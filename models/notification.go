package models

import "time"

type NotificationType string

const (
	NotifyShiftPosted      NotificationType = "shift_posted"
	NotifyShiftClaimed     NotificationType = "shift_claimed"
	NotifyShiftApproved    NotificationType = "shift_approved"
	NotifyShiftRejected    NotificationType = "shift_rejected"
	NotifyShiftCompleted   NotificationType = "shift_completed"
	NotifyShiftCancelled   NotificationType = "shift_cancelled"
	NotifyPaymentProcessed NotificationType = "payment_processed"
)

// Notification is write-once except for the read flag.
type Notification struct {
	NotificationID string           `json:"notificationid" bson:"notificationid"`
	UserID         string           `json:"userid" bson:"userid"`
	Type           NotificationType `json:"type" bson:"type"`
	Title          string           `json:"title" bson:"title"`
	Message        string           `json:"message" bson:"message"`
	RelatedShiftID string           `json:"related_shiftid,omitempty" bson:"related_shiftid,omitempty"`
	IsRead         bool             `json:"is_read" bson:"is_read"`
	CreatedAt      time.Time        `json:"created_at" bson:"created_at"`
}

// Index represents an indexing-related message to be emitted.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}
