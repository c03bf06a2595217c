package dto

import activityDto "outings-api/modules/activity/dto"

type LoginRequest struct {
	Email string `json:"email"`
}

type SignupRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse tells the client which id to send back in the X-User-ID header.
type LoginResponse struct {
	User   activityDto.UserResponse `json:"user"`
	Header string                   `json:"header"`
}
