package dto

import (
	"time"

	activityDto "outings-api/modules/activity/dto"
)

type CreateDraftRequest struct {
	activityDto.CreateActivityRequest
}

// UpdateDraftRequest patches the form; nil fields are left alone.
type UpdateDraftRequest struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Location    *string               `json:"location"`
	Coordinates *activityDto.GeoPoint `json:"coordinates"`
	Datetime    *string               `json:"datetime"`
	Capacity    *int                  `json:"capacity"`
	Image       *string               `json:"image"`
	Type        *string               `json:"type"`
}

type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

type DraftResponse struct {
	ID         string                            `json:"id"`
	Form       activityDto.CreateActivityRequest `json:"form"`
	Prompt     string                            `json:"prompt,omitempty"`
	Generating bool                              `json:"generating"`
	Error      string                            `json:"error,omitempty"`
	CreatedAt  time.Time                         `json:"created_at"`
	UpdatedAt  time.Time                         `json:"updated_at"`
}

type GenerateResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
