package entity

type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "pending"
	RegistrationStatusAccepted RegistrationStatus = "accepted"
	RegistrationStatusRejected RegistrationStatus = "rejected"
)

func (s RegistrationStatus) IsValid() bool {
	switch s {
	case RegistrationStatusPending, RegistrationStatusAccepted, RegistrationStatusRejected:
		return true
	}
	return false
}

// IsDecision reports whether s is a status an organizer can set.
func (s RegistrationStatus) IsDecision() bool {
	return s == RegistrationStatusAccepted || s == RegistrationStatusRejected
}

// Registration is one join request of a user for an activity.
type Registration struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	ActivityID string             `json:"activity_id"`
	Status     RegistrationStatus `json:"status"`
}
