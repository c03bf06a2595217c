package validator

import (
	"strings"
	"time"

	"outings-api/core/utils"
	"outings-api/core/validation"
	"outings-api/modules/activity/dto"
	"outings-api/modules/activity/entity"
)

const DefaultCapacity = 10

// ApplyActivityDefaults fills the optional create fields the form leaves empty.
func ApplyActivityDefaults(req *dto.CreateActivityRequest) {
	if req.Capacity == 0 {
		req.Capacity = DefaultCapacity
	}
	if strings.TrimSpace(req.Type) == "" {
		req.Type = string(entity.ActivityTypeHike)
	}
}

// ValidateCreateActivityRequest checks a create request after defaults were applied
// and returns the parsed datetime.
func ValidateCreateActivityRequest(req *dto.CreateActivityRequest, loc *time.Location) (time.Time, *validation.Result) {
	result := validation.NewResult()

	result.Required("title", utils.SanitizeText(req.Title))
	result.Required("location", utils.SanitizeText(req.Location))

	var datetime time.Time
	if strings.TrimSpace(req.Datetime) == "" {
		result.Add("datetime", "datetime is required")
	} else {
		parsed, err := utils.ParseDatetime(strings.TrimSpace(req.Datetime), loc)
		if err != nil {
			result.Add("datetime", "datetime is not a valid date")
		} else {
			datetime = parsed
		}
	}

	if req.Capacity <= 0 {
		result.Add("capacity", "capacity must be a positive number")
	}
	if !entity.ActivityType(req.Type).IsValid() {
		result.Add("type", "type must be one of Randonnée, Visite, Pique-nique, Sport, Culture")
	}
	if c := req.Coordinates; c != nil {
		if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
			result.Add("coordinates", "coordinates are out of range")
		}
	}

	return datetime, result
}

// ValidateCreateCommentRequest checks content and rating of a review.
func ValidateCreateCommentRequest(req *dto.CreateCommentRequest) *validation.Result {
	result := validation.NewResult()
	result.Required("content", utils.SanitizeText(req.Content))
	if req.Rating < entity.MinRating || req.Rating > entity.MaxRating {
		result.Add("rating", "rating must be between 1 and 5")
	}
	return result
}

// ValidateDecideRegistrationRequest accepts only the two terminal statuses.
func ValidateDecideRegistrationRequest(req *dto.DecideRegistrationRequest) *validation.Result {
	result := validation.NewResult()
	if !entity.RegistrationStatus(req.Status).IsDecision() {
		result.Add("status", "status must be accepted or rejected")
	}
	return result
}
