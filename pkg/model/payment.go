package model

import "time"

// PaymentTransaction is one entry in the flat payment ledger. Transactions
// carry no booking reference; the two ledgers are independent.
type PaymentTransaction struct {
	ID     string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Amount float64   `json:"amount" bson:"amount" validate:"required,gt=0"`
	Method string    `json:"method" bson:"method" validate:"required,min=2,max=50"`
	Status string    `json:"status,omitempty" bson:"status" validate:"omitempty,max=50"`
	Date   time.Time `json:"date" bson:"date" validate:"omitempty"`
}

// PaymentPreference records a caregiver's preferred payout method and rate.
type PaymentPreference struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Method    string    `json:"method" bson:"method" validate:"required,min=2,max=50"`
	Rate      float64   `json:"rate" bson:"rate" validate:"required,gt=0"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
