package dto

import (
	"time"

	geomap "outings-api/modules/geomap/service"
)

type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CreateActivityRequest is the create form. Datetime accepts RFC 3339 or a local
// date-time without offset, read in the server location.
type CreateActivityRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Coordinates *GeoPoint `json:"coordinates,omitempty"`
	Datetime    string    `json:"datetime"`
	Capacity    int       `json:"capacity"`
	Image       string    `json:"image"`
	Type        string    `json:"type"`
}

type ActivityResponse struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Location      string        `json:"location"`
	Coordinates   *GeoPoint     `json:"coordinates,omitempty"`
	Datetime      time.Time     `json:"datetime"`
	DatetimeLabel string        `json:"datetime_label"`
	Capacity      int           `json:"capacity"`
	Image         string        `json:"image"`
	Type          string        `json:"type"`
	OrganizerID   string        `json:"organizer_id"`
	Organizer     *UserResponse `json:"organizer,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ActivityCard is the compact form used by lists.
type ActivityCard struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Location          string    `json:"location"`
	Datetime          time.Time `json:"datetime"`
	DatetimeLabel     string    `json:"datetime_label"`
	Image             string    `json:"image"`
	Type              string    `json:"type"`
	Capacity          int       `json:"capacity"`
	AcceptedCount     int       `json:"accepted_count"`
	RemainingCapacity int       `json:"remaining_capacity"`
	IsPast            bool      `json:"is_past"`
	IsFull            bool      `json:"is_full"`
	StatusLabel       string    `json:"status_label"`
}

type RegistrationResponse struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	ActivityID string        `json:"activity_id"`
	Status     string        `json:"status"`
	User       *UserResponse `json:"user,omitempty"`
}

type DecideRegistrationRequest struct {
	Status string `json:"status"`
}

// DecideRegistrationResponse reports the outcome of a decision. Applied is false when
// the registration id was unknown.
type DecideRegistrationResponse struct {
	Applied      bool                  `json:"applied"`
	Registration *RegistrationResponse `json:"registration,omitempty"`
}

type LeaveResponse struct {
	ActivityID string `json:"activity_id"`
	Removed    int    `json:"removed"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

type CommentResponse struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	ActivityID string        `json:"activity_id"`
	Author     *UserResponse `json:"author,omitempty"`
	Content    string        `json:"content"`
	Rating     int           `json:"rating"`
	CreatedAt  time.Time     `json:"created_at"`
}

// ===================== Page views =====================

// PageView wraps every projected page. Page is the name of the page actually
// rendered, which is "auth" when a protected page was requested anonymously.
type PageView struct {
	Page      string        `json:"page"`
	Requested string        `json:"requested"`
	Viewer    *UserResponse `json:"viewer,omitempty"`
	Data      any           `json:"data"`
}

type HomeView struct {
	Activities []ActivityCard `json:"activities"`
}

type CatalogView struct {
	Search     string          `json:"search"`
	Type       string          `json:"type"`
	Mode       string          `json:"mode"`
	Types      []string        `json:"types"`
	Activities []ActivityCard  `json:"activities"`
	Map        *geomap.MapView `json:"map,omitempty"`
}

type DetailView struct {
	Activity           ActivityResponse       `json:"activity"`
	Registrations      []RegistrationResponse `json:"registrations"`
	Comments           []CommentResponse      `json:"comments"`
	AcceptedCount      int                    `json:"accepted_count"`
	RemainingCapacity  int                    `json:"remaining_capacity"`
	AverageRating      float64                `json:"average_rating"`
	AverageRatingLabel string                 `json:"average_rating_label"`
	IsRegistered       bool                   `json:"is_registered"`
	RegistrationStatus string                 `json:"registration_status,omitempty"`
	IsOrganizer        bool                   `json:"is_organizer"`
	IsPast             bool                   `json:"is_past"`
	IsFull             bool                   `json:"is_full"`
	StatusLabel        string                 `json:"status_label"`
	JoinGate           string                 `json:"join_gate"`
	CanComment         bool                   `json:"can_comment"`
	Map                *geomap.MapView        `json:"map,omitempty"`
}

type DashboardActivity struct {
	Activity      ActivityCard           `json:"activity"`
	Registrations []RegistrationResponse `json:"registrations"`
	PendingCount  int                    `json:"pending_count"`
}

type DashboardView struct {
	Activities []DashboardActivity `json:"activities"`
}

type RegisteredActivity struct {
	Activity ActivityCard `json:"activity"`
	Status   string       `json:"status"`
}

type ProfileView struct {
	User       UserResponse         `json:"user"`
	Organized  []ActivityCard       `json:"organized"`
	Registered []RegisteredActivity `json:"registered"`
}

type CreateActivityView struct {
	Types    []string              `json:"types"`
	Defaults CreateActivityRequest `json:"defaults"`
}

type AuthView struct {
	Message    string   `json:"message,omitempty"`
	DemoEmails []string `json:"demo_emails"`
}
