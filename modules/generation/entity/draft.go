package entity

import "time"

// ActivityDetails is what the text generator returns for a prompt.
type ActivityDetails struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Draft holds the create form while the organizer edits it. Only the generator
// writes Title and Description on its own; the store is never touched before Submit.
type Draft struct {
	ID      string
	OwnerID string

	Title       string
	Description string
	Location    string
	Lat         *float64
	Lng         *float64
	Datetime    string
	Capacity    int
	Image       string
	Type        string

	Prompt     string
	Generating bool
	Error      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
