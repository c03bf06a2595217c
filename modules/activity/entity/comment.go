package entity

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Comment is a review left by a participant once the activity is over.
type Comment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ActivityID string    `json:"activity_id"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
}
