package model

import (
	"time"
)

// Booking is a childcare request placed by a parent/guardian against a
// caregiver. Both parties are referenced by opaque ids owned by the external
// identity service; they are validated for ObjectID syntax only.
type Booking struct {
	ID                  string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RequesterID         string    `json:"requester_id" bson:"requester_id" validate:"required,mongodb"`
	CaregiverID         string    `json:"caregiver_id" bson:"caregiver_id" validate:"required,mongodb"`
	Date                string    `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Time                string    `json:"time" bson:"time" validate:"required,min=1,max=50"`
	FamilyName          string    `json:"family_name" bson:"family_name" validate:"required,min=1,max=100"`
	NumberOfChildren    int       `json:"number_of_children" bson:"number_of_children" validate:"required,min=1,max=20"`
	Address             string    `json:"address" bson:"address" validate:"required,min=2,max=200"`
	SpecialInstructions string    `json:"special_instructions,omitempty" bson:"special_instructions,omitempty" validate:"omitempty,max=500"`
	Status              string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed rejected completed"`
	Rating              *int      `json:"rating,omitempty" bson:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Review              string    `json:"review,omitempty" bson:"review,omitempty" validate:"omitempty,max=2000"`
	CreatedAt           time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt           time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// StatusUpdate is the caregiver-initiated transition payload. "completed" is
// deliberately absent: that state is reachable only through rating submission.
type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed rejected"`
}

// RatingSubmission attaches a rating and optional review text to a booking
// and forces it into the completed state.
type RatingSubmission struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review,omitempty" validate:"omitempty,max=2000"`
}

// RequesterSummary is the slice of the external users collection attached to
// caregiver-facing booking listings. Nil when the user document is missing.
type RequesterSummary struct {
	ID    string `json:"id,omitempty" bson:"_id,omitempty"`
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// BookingWithRequester is a booking joined with its requester's identity.
type BookingWithRequester struct {
	Booking   `bson:",inline"`
	Requester *RequesterSummary `json:"requester,omitempty" bson:"requester,omitempty"`
}
