package models

import "time"

// UserType tags an identity record as one side of the marketplace.
type UserType string

const (
	UserTypeWorker   UserType = "worker"
	UserTypeBusiness UserType = "business"
)

// UserProfile is the root identity record binding an authenticated principal
// to a role. One per principal; the role never changes after creation.
type UserProfile struct {
	ID             string    `json:"id" bson:"id"`
	OwnerPrincipal string    `json:"owner_principal" bson:"owner_principal"`
	UserType       UserType  `json:"user_type" bson:"user_type"`
	Name           string    `json:"name" bson:"name"`
	Email          string    `json:"email" bson:"email"`
	Phone          string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Location       string    `json:"location" bson:"location"`
	DIDDocument    string    `json:"did_document,omitempty" bson:"did_document,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// Account is a login credential record, keyed by username. The principal id
// it carries is what every downstream authorization decision sees.
type Account struct {
	PrincipalID  string    `json:"principalid" bson:"principalid"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Roles        []string  `json:"roles" bson:"roles"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// PrincipalLink is the reverse index from an authenticated principal to the
// identity record it owns.
type PrincipalLink struct {
	Principal string `json:"principal" bson:"principal"`
	UserID    string `json:"userid" bson:"userid"`
}

type WorkerProfile struct {
	UserID               string    `json:"userid" bson:"userid"`
	Skills               []string  `json:"skills" bson:"skills"`
	ExperienceLevel      string    `json:"experience_level" bson:"experience_level"`
	Availability         []string  `json:"availability" bson:"availability"`
	Bio                  string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Photo                string    `json:"photo,omitempty" bson:"photo,omitempty"`
	TotalShiftsCompleted int64     `json:"total_shifts_completed" bson:"total_shifts_completed"`
	AverageRating        *float64  `json:"average_rating,omitempty" bson:"average_rating,omitempty"`
	IsVerified           bool      `json:"is_verified" bson:"is_verified"`
	CreatedAt            time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type BusinessProfile struct {
	UserID       string    `json:"userid" bson:"userid"`
	BusinessName string    `json:"business_name" bson:"business_name"`
	BusinessType string    `json:"business_type" bson:"business_type"`
	BusinessSize string    `json:"business_size,omitempty" bson:"business_size,omitempty"`
	Address      string    `json:"address,omitempty" bson:"address,omitempty"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	IsVerified   bool      `json:"is_verified" bson:"is_verified"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
