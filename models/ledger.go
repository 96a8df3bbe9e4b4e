package models

import "time"

// WorkHistory is an append-only record of a completed shift, snapshotting the
// shift facts at completion time. Never mutated after creation.
type WorkHistory struct {
	HistoryID        string    `json:"historyid" bson:"historyid"`
	WorkerID         string    `json:"worker_id" bson:"worker_id"`
	BusinessID       string    `json:"business_id" bson:"business_id"`
	ShiftID          string    `json:"shiftid" bson:"shiftid"`
	Role             string    `json:"role" bson:"role"`
	DateWorked       string    `json:"date_worked" bson:"date_worked"`
	HoursWorked      float64   `json:"hours_worked" bson:"hours_worked"`
	PayEarned        float64   `json:"pay_earned" bson:"pay_earned"`
	BusinessName     string    `json:"business_name" bson:"business_name"`
	Location         string    `json:"location" bson:"location"`
	CompletedAt      time.Time `json:"completed_at" bson:"completed_at"`
	VerificationHash string    `json:"verification_hash" bson:"verification_hash"`
}

// Rating is an append-only business-to-worker score with its shift snapshot.
type Rating struct {
	RatingID         string    `json:"ratingid" bson:"ratingid"`
	WorkerID         string    `json:"worker_id" bson:"worker_id"`
	BusinessID       string    `json:"business_id" bson:"business_id"`
	ShiftID          string    `json:"shiftid" bson:"shiftid"`
	Rating           int       `json:"rating" bson:"rating"`
	Comment          string    `json:"comment,omitempty" bson:"comment,omitempty"`
	BusinessName     string    `json:"business_name" bson:"business_name"`
	Role             string    `json:"role" bson:"role"`
	DateWorked       string    `json:"date_worked" bson:"date_worked"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	VerificationHash string    `json:"verification_hash" bson:"verification_hash"`
}

// DIDDocument is the worker-scoped portable reputation aggregate: ordered
// history and rating id sequences plus the derived totals. Created once at
// worker-profile creation and appended to, never replaced wholesale.
type DIDDocument struct {
	WorkerID       string    `json:"worker_id" bson:"worker_id"`
	WorkHistory    []string  `json:"work_history" bson:"work_history"`
	Ratings        []string  `json:"ratings" bson:"ratings"`
	TotalShifts    int64     `json:"total_shifts" bson:"total_shifts"`
	AverageRating  *float64  `json:"average_rating,omitempty" bson:"average_rating,omitempty"`
	SkillsVerified []string  `json:"skills_verified" bson:"skills_verified"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
	Signature      string    `json:"signature" bson:"signature"`
}
