package service

import (
	"time"

	"outings-api/modules/activity/entity"
)

// JoinGate explains whether a viewer may send a join request for an activity.
type JoinGate string

const (
	JoinOpen       JoinGate = "open"
	JoinFull       JoinGate = "full"
	JoinPast       JoinGate = "past"
	JoinOrganizer  JoinGate = "organizer"
	JoinRegistered JoinGate = "registered"
	JoinAnonymous  JoinGate = "anonymous"
	JoinNotFound   JoinGate = "not_found"
)

// Derivations computes read-side facts over one snapshot. Nothing is cached; every
// call walks the snapshot again.
type Derivations struct {
	snap *entity.Snapshot
	now  time.Time

	// reopenRejected lets a user whose latest registration is rejected ask again.
	reopenRejected bool
}

func NewDerivations(snap *entity.Snapshot, now time.Time) *Derivations {
	return &Derivations{snap: snap, now: now}
}

// WithReopenRejected mirrors the upsert-on-register policy in JoinGate.
func (d *Derivations) WithReopenRejected(reopen bool) *Derivations {
	d.reopenRejected = reopen
	return d
}

func (d *Derivations) Snapshot() *entity.Snapshot {
	return d.snap
}

func (d *Derivations) Now() time.Time {
	return d.now
}

// AcceptedCount counts accepted registrations of the activity.
func (d *Derivations) AcceptedCount(activityID string) int {
	n := 0
	for _, r := range d.snap.RegistrationsFor(activityID) {
		if r.Status == entity.RegistrationStatusAccepted {
			n++
		}
	}
	return n
}

// IsRegistered is true when the user holds a registration of any status.
func (d *Derivations) IsRegistered(userID, activityID string) bool {
	_, ok := d.latestRegistration(userID, activityID)
	return ok
}

// RegistrationStatus returns the status of the user's most recent registration.
func (d *Derivations) RegistrationStatus(userID, activityID string) (entity.RegistrationStatus, bool) {
	r, ok := d.latestRegistration(userID, activityID)
	if !ok {
		return "", false
	}
	return r.Status, true
}

// AverageRating is the arithmetic mean of the activity's ratings, 0 with no comments.
func (d *Derivations) AverageRating(activityID string) float64 {
	comments := d.snap.CommentsFor(activityID)
	if len(comments) == 0 {
		return 0
	}
	sum := 0
	for _, c := range comments {
		sum += c.Rating
	}
	return float64(sum) / float64(len(comments))
}

// RemainingCapacity is capacity minus accepted count. It goes negative when the
// organizer accepted more people than planned.
func (d *Derivations) RemainingCapacity(activityID string) int {
	a, ok := d.snap.Activity(activityID)
	if !ok {
		return 0
	}
	return a.Capacity - d.AcceptedCount(activityID)
}

func (d *Derivations) IsFull(activityID string) bool {
	return d.RemainingCapacity(activityID) <= 0
}

func (d *Derivations) IsPast(activityID string) bool {
	a, ok := d.snap.Activity(activityID)
	return ok && a.IsPast(d.now)
}

// JoinGate evaluates the join button for a viewer. An empty userID is anonymous.
func (d *Derivations) JoinGate(userID, activityID string) JoinGate {
	a, ok := d.snap.Activity(activityID)
	switch {
	case !ok:
		return JoinNotFound
	case userID == "":
		return JoinAnonymous
	case a.OrganizerID == userID:
		return JoinOrganizer
	case d.IsRegistered(userID, activityID) && !d.canReopen(userID, activityID):
		return JoinRegistered
	case a.IsPast(d.now):
		return JoinPast
	case d.IsFull(activityID):
		return JoinFull
	}
	return JoinOpen
}

// CanComment is true for registered users once the activity is over.
func (d *Derivations) CanComment(userID, activityID string) bool {
	if userID == "" {
		return false
	}
	return d.IsPast(activityID) && d.IsRegistered(userID, activityID)
}

func (d *Derivations) canReopen(userID, activityID string) bool {
	if !d.reopenRejected {
		return false
	}
	status, ok := d.RegistrationStatus(userID, activityID)
	return ok && status == entity.RegistrationStatusRejected
}

func (d *Derivations) latestRegistration(userID, activityID string) (entity.Registration, bool) {
	var (
		found entity.Registration
		ok    bool
	)
	for _, r := range d.snap.RegistrationsFor(activityID) {
		if r.UserID == userID {
			found, ok = r, true
		}
	}
	return found, ok
}
