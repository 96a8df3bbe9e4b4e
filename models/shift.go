package models

import "time"

type ShiftStatus string

const (
	ShiftDraft      ShiftStatus = "draft"
	ShiftOpen       ShiftStatus = "open"
	ShiftClaimed    ShiftStatus = "claimed"
	ShiftApproved   ShiftStatus = "approved"
	ShiftInProgress ShiftStatus = "in_progress"
	ShiftCompleted  ShiftStatus = "completed"
	ShiftCancelled  ShiftStatus = "cancelled"
)

// Shift is a single postable, applyable, assignable unit of paid work,
// owned exclusively by the business that created it.
type Shift struct {
	ShiftID        string      `json:"shiftid" bson:"shiftid"`
	BusinessID     string      `json:"business_id" bson:"business_id"`
	Role           string      `json:"role" bson:"role"`
	Date           string      `json:"date" bson:"date"`
	StartTime      string      `json:"start_time" bson:"start_time"`
	EndTime        string      `json:"end_time" bson:"end_time"`
	PayRate        float64     `json:"pay_rate" bson:"pay_rate"`
	Location       string      `json:"location" bson:"location"`
	Description    string      `json:"description,omitempty" bson:"description,omitempty"`
	Requirements   []string    `json:"requirements" bson:"requirements"`
	Status         ShiftStatus `json:"status" bson:"status"`
	AssignedWorker string      `json:"assigned_worker,omitempty" bson:"assigned_worker,omitempty"`
	Applicants     []string    `json:"applicants" bson:"applicants"`
	IsUrgent       bool        `json:"is_urgent" bson:"is_urgent"`
	CreatedAt      time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" bson:"updated_at"`
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ShiftApplication is keyed by AppKey, the composite "<shiftid>_<workerid>";
// at most one exists per pair.
type ShiftApplication struct {
	AppKey    string            `json:"-" bson:"appkey"`
	ShiftID   string            `json:"shiftid" bson:"shiftid"`
	WorkerID  string            `json:"worker_id" bson:"worker_id"`
	Message   string            `json:"message,omitempty" bson:"message,omitempty"`
	Status    ApplicationStatus `json:"status" bson:"status"`
	AppliedAt time.Time         `json:"applied_at" bson:"applied_at"`
}
