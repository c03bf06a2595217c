package mapper

import (
	"time"

	"outings-api/core/constants"
	"outings-api/core/utils"
	"outings-api/modules/activity/dto"
	"outings-api/modules/activity/entity"
	geomap "outings-api/modules/geomap/service"
)

func ToUserResponse(u entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}

// ToUserResponsePtr returns nil for users missing from the snapshot.
func ToUserResponsePtr(u entity.User, ok bool) *dto.UserResponse {
	if !ok {
		return nil
	}
	resp := ToUserResponse(u)
	return &resp
}

func ToGeoPointDTO(p *entity.GeoPoint) *dto.GeoPoint {
	if p == nil {
		return nil
	}
	return &dto.GeoPoint{Lat: p.Lat, Lng: p.Lng}
}

func ToGeoPointEntity(p *dto.GeoPoint) *entity.GeoPoint {
	if p == nil {
		return nil
	}
	return &entity.GeoPoint{Lat: p.Lat, Lng: p.Lng}
}

func ToActivityResponse(a entity.Activity, organizer *dto.UserResponse) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		Location:      a.Location,
		Coordinates:   ToGeoPointDTO(a.Coordinates),
		Datetime:      a.Datetime,
		DatetimeLabel: utils.FormatDateFR(a.Datetime),
		Capacity:      a.Capacity,
		Image:         a.Image,
		Type:          string(a.Type),
		OrganizerID:   a.OrganizerID,
		Organizer:     organizer,
		CreatedAt:     a.CreatedAt,
	}
}

func ToActivityCard(a entity.Activity, acceptedCount int, now time.Time) dto.ActivityCard {
	past := a.IsPast(now)
	return dto.ActivityCard{
		ID:                a.ID,
		Title:             a.Title,
		Location:          a.Location,
		Datetime:          a.Datetime,
		DatetimeLabel:     utils.FormatDateFR(a.Datetime),
		Image:             a.Image,
		Type:              string(a.Type),
		Capacity:          a.Capacity,
		AcceptedCount:     acceptedCount,
		RemainingCapacity: a.Capacity - acceptedCount,
		IsPast:            past,
		IsFull:            acceptedCount >= a.Capacity,
		StatusLabel:       StatusLabel(past),
	}
}

func StatusLabel(past bool) string {
	if past {
		return constants.LabelFinished
	}
	return constants.LabelUpcoming
}

func ToRegistrationResponse(r entity.Registration, user *dto.UserResponse) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		ActivityID: r.ActivityID,
		Status:     string(r.Status),
		User:       user,
	}
}

func ToCommentResponse(c entity.Comment, author *dto.UserResponse) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         c.ID,
		UserID:     c.UserID,
		ActivityID: c.ActivityID,
		Author:     author,
		Content:    c.Content,
		Rating:     c.Rating,
		CreatedAt:  c.CreatedAt,
	}
}

// ToMarkers keeps the activities that carry coordinates.
func ToMarkers(activities []entity.Activity) []geomap.Marker {
	markers := make([]geomap.Marker, 0, len(activities))
	for _, a := range activities {
		if a.Coordinates == nil {
			continue
		}
		markers = append(markers, geomap.Marker{
			ID:       a.ID,
			Title:    a.Title,
			Position: geomap.Point{Lat: a.Coordinates.Lat, Lng: a.Coordinates.Lng},
		})
	}
	return markers
}

// ToActivityData converts a validated request. Text fields are sanitized here.
func ToActivityData(req *dto.CreateActivityRequest, datetime time.Time) entity.ActivityData {
	return entity.ActivityData{
		Title:       utils.SanitizeText(req.Title),
		Description: utils.SanitizeText(req.Description),
		Location:    utils.SanitizeText(req.Location),
		Coordinates: ToGeoPointEntity(req.Coordinates),
		Datetime:    datetime,
		Capacity:    req.Capacity,
		Image:       req.Image,
		Type:        entity.ActivityType(req.Type),
	}
}
