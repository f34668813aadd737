package model

import "time"

// Review is one entry in the free-floating feedback feed. Reviews are never
// linked to a booking and are immutable after creation.
type Review struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ReviewerName string    `json:"reviewer_name" bson:"reviewer_name" validate:"required,min=1,max=100"`
	Question1    string    `json:"question1" bson:"question1" validate:"required,min=1,max=500"`
	Question2    string    `json:"question2" bson:"question2" validate:"required,min=1,max=500"`
	Question3    string    `json:"question3" bson:"question3" validate:"required,min=1,max=500"`
	Rating       int       `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	ReviewText   string    `json:"review_text" bson:"review_text" validate:"required,min=1,max=2000"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// PromptAnswers holds the most frequent non-empty answer for each of the
// three fixed review prompts.
type PromptAnswers struct {
	Question1 string `json:"question1"`
	Question2 string `json:"question2"`
	Question3 string `json:"question3"`
}

// ReviewStats is computed over the whole feed on every read; nothing is
// persisted.
type ReviewStats struct {
	TotalReviews       int64         `json:"total_reviews"`
	AverageRating      float64       `json:"average_rating"`
	RatingDistribution [5]int64      `json:"rating_distribution"`
	MostCommonAnswers  PromptAnswers `json:"most_common_answers"`
}
