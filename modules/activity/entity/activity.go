package entity

import "time"

type ActivityType string

const (
	ActivityTypeHike    ActivityType = "Randonnée"
	ActivityTypeTour    ActivityType = "Visite"
	ActivityTypePicnic  ActivityType = "Pique-nique"
	ActivityTypeSport   ActivityType = "Sport"
	ActivityTypeCulture ActivityType = "Culture"
)

// ActivityTypes lists the enumeration in form order.
var ActivityTypes = []ActivityType{
	ActivityTypeHike,
	ActivityTypeTour,
	ActivityTypePicnic,
	ActivityTypeSport,
	ActivityTypeCulture,
}

func (t ActivityType) IsValid() bool {
	for _, v := range ActivityTypes {
		if v == t {
			return true
		}
	}
	return false
}

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

type Activity struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Coordinates *GeoPoint    `json:"coordinates,omitempty"`
	Datetime    time.Time    `json:"datetime"`
	Capacity    int          `json:"capacity"`
	Image       string       `json:"image"`
	Type        ActivityType `json:"type"`
	OrganizerID string       `json:"organizer_id"`
	CreatedAt   time.Time    `json:"created_at"`
}

// IsPast reports whether the activity started before now.
func (a *Activity) IsPast(now time.Time) bool {
	return a.Datetime.Before(now)
}

// ActivityData is what an organizer supplies; the store fills id, organizer and created_at.
type ActivityData struct {
	Title       string
	Description string
	Location    string
	Coordinates *GeoPoint
	Datetime    time.Time
	Capacity    int
	Image       string
	Type        ActivityType
}
