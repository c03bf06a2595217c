package entity

// Snapshot is an immutable copy of the store taken under its read lock.
// Collections are id-keyed; the order slices carry the store ordering
// (activities most recent first, registrations and comments in insertion order).
type Snapshot struct {
	Users         map[string]User
	Activities    map[string]Activity
	Registrations map[string]Registration
	Comments      map[string]Comment

	UserOrder         []string
	ActivityOrder     []string
	RegistrationOrder []string
	CommentOrder      []string
}

func (s *Snapshot) User(id string) (User, bool) {
	u, ok := s.Users[id]
	return u, ok
}

func (s *Snapshot) Activity(id string) (Activity, bool) {
	a, ok := s.Activities[id]
	return a, ok
}

func (s *Snapshot) Registration(id string) (Registration, bool) {
	r, ok := s.Registrations[id]
	return r, ok
}

// ListUsers returns users in seed order.
func (s *Snapshot) ListUsers() []User {
	out := make([]User, 0, len(s.UserOrder))
	for _, id := range s.UserOrder {
		out = append(out, s.Users[id])
	}
	return out
}

// ListActivities returns activities in store order, most recently created first.
func (s *Snapshot) ListActivities() []Activity {
	out := make([]Activity, 0, len(s.ActivityOrder))
	for _, id := range s.ActivityOrder {
		out = append(out, s.Activities[id])
	}
	return out
}

func (s *Snapshot) ListRegistrations() []Registration {
	out := make([]Registration, 0, len(s.RegistrationOrder))
	for _, id := range s.RegistrationOrder {
		out = append(out, s.Registrations[id])
	}
	return out
}

// RegistrationsFor returns the registrations of one activity in insertion order.
func (s *Snapshot) RegistrationsFor(activityID string) []Registration {
	out := make([]Registration, 0)
	for _, id := range s.RegistrationOrder {
		if r := s.Registrations[id]; r.ActivityID == activityID {
			out = append(out, r)
		}
	}
	return out
}

// CommentsFor returns the comments of one activity in insertion order.
func (s *Snapshot) CommentsFor(activityID string) []Comment {
	out := make([]Comment, 0)
	for _, id := range s.CommentOrder {
		if c := s.Comments[id]; c.ActivityID == activityID {
			out = append(out, c)
		}
	}
	return out
}
