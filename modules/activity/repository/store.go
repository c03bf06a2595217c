package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"outings-api/core/logger"
	"outings-api/core/utils"
	"outings-api/modules/activity/entity"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrInvalidStatus    = errors.New("status must be accepted or rejected")
	ErrDuplicateID      = errors.New("duplicate id")
)

// StoreInterface is the only mutation surface over users, activities, registrations and comments.
type StoreInterface interface {
	// Activities
	CreateActivity(ctx context.Context, data entity.ActivityData, organizerID string) (*entity.Activity, error)

	// Registrations
	CreateRegistration(ctx context.Context, userID, activityID string) (*entity.Registration, error)
	ReopenOrCreateRegistration(ctx context.Context, userID, activityID string) (*entity.Registration, bool, error)
	RemoveRegistration(ctx context.Context, userID, activityID string) (int, error)
	UpdateRegistrationStatus(ctx context.Context, registrationID string, status entity.RegistrationStatus) (bool, error)

	// Comments
	CreateComment(ctx context.Context, userID, activityID, content string, rating int) (*entity.Comment, error)

	// Reads
	FindUserByEmail(ctx context.Context, email string) (*entity.User, error)
	ActivityByID(id string) (entity.Activity, bool)
	RegistrationByID(id string) (entity.Registration, bool)
	AcceptedCount(activityID string) int
	Snapshot() *entity.Snapshot
}

// Store keeps every collection in id-keyed maps. All writes hold mu exclusively.
type Store struct {
	mu sync.RWMutex

	users        map[string]entity.User
	usersByEmail map[string]string
	userOrder    []string

	activities    map[string]entity.Activity
	activityOrder []string

	registrations     map[string]entity.Registration
	registrationOrder []string

	comments     map[string]entity.Comment
	commentOrder []string

	now   func() time.Time
	newID func(prefix string) string
}

type Option func(*Store)

// WithClock overrides the clock used for created_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(fn func(prefix string) string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		users:         make(map[string]entity.User),
		usersByEmail:  make(map[string]string),
		activities:    make(map[string]entity.Activity),
		registrations: make(map[string]entity.Registration),
		comments:      make(map[string]entity.Comment),
		now:           time.Now,
		newID:         utils.GenerateID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ===================== Activities =====================

// CreateActivity stores a new activity at the front of the collection.
func (s *Store) CreateActivity(ctx context.Context, data entity.ActivityData, organizerID string) (*entity.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[organizerID]; !ok {
		return nil, fmt.Errorf("organizer %q: %w", organizerID, ErrUserNotFound)
	}

	id, err := s.freshID(utils.PrefixActivity, func(id string) bool {
		_, taken := s.activities[id]
		return taken
	})
	if err != nil {
		return nil, err
	}

	activity := entity.Activity{
		ID:          id,
		Title:       data.Title,
		Description: data.Description,
		Location:    data.Location,
		Coordinates: cloneGeoPoint(data.Coordinates),
		Datetime:    data.Datetime,
		Capacity:    data.Capacity,
		Image:       data.Image,
		Type:        data.Type,
		OrganizerID: organizerID,
		CreatedAt:   s.now(),
	}

	s.activities[id] = activity
	s.activityOrder = append([]string{id}, s.activityOrder...)

	logger.Info("Store:CreateActivity", "activity_id", id, "organizer_id", organizerID)
	return &activity, nil
}

// ===================== Registrations =====================

// CreateRegistration appends a pending registration. The same pair may be registered
// more than once; every call produces an independent record.
func (s *Store) CreateRegistration(ctx context.Context, userID, activityID string) (*entity.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRefs(userID, activityID); err != nil {
		return nil, err
	}
	reg, err := s.insertRegistration(userID, activityID)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ReopenOrCreateRegistration reuses the first record of the pair when one exists.
// A rejected or pending record goes back to pending; an accepted one is returned untouched.
// The bool result is true when a new record was inserted.
func (s *Store) ReopenOrCreateRegistration(ctx context.Context, userID, activityID string) (*entity.Registration, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRefs(userID, activityID); err != nil {
		return nil, false, err
	}

	for _, id := range s.registrationOrder {
		reg := s.registrations[id]
		if reg.UserID != userID || reg.ActivityID != activityID {
			continue
		}
		if reg.Status == entity.RegistrationStatusRejected {
			reg.Status = entity.RegistrationStatusPending
			s.registrations[id] = reg
		}
		return &reg, false, nil
	}

	reg, err := s.insertRegistration(userID, activityID)
	if err != nil {
		return nil, false, err
	}
	return &reg, true, nil
}

// RemoveRegistration deletes every registration of the pair whatever its status and
// returns how many were removed. Removing nothing is not an error.
func (s *Store) RemoveRegistration(ctx context.Context, userID, activityID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.registrationOrder[:0]
	removed := 0
	for _, id := range s.registrationOrder {
		reg := s.registrations[id]
		if reg.UserID == userID && reg.ActivityID == activityID {
			delete(s.registrations, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.registrationOrder = kept

	if removed > 0 {
		logger.Info("Store:RemoveRegistration", "user_id", userID, "activity_id", activityID, "removed", removed)
	}
	return removed, nil
}

// UpdateRegistrationStatus overwrites the status of a registration. The previous status
// is not checked. Unknown ids are a no-op reported by a false result.
func (s *Store) UpdateRegistrationStatus(ctx context.Context, registrationID string, status entity.RegistrationStatus) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !status.IsDecision() {
		return false, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.registrations[registrationID]
	if !ok {
		logger.Warn("Store:UpdateRegistrationStatus:UnknownID", "registration_id", registrationID)
		return false, nil
	}
	reg.Status = status
	s.registrations[registrationID] = reg

	logger.Info("Store:UpdateRegistrationStatus", "registration_id", registrationID, "status", status)
	return true, nil
}

// ===================== Comments =====================

// CreateComment appends a comment. Content and rating bounds are checked by callers.
func (s *Store) CreateComment(ctx context.Context, userID, activityID, content string, rating int) (*entity.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRefs(userID, activityID); err != nil {
		return nil, err
	}

	id, err := s.freshID(utils.PrefixComment, func(id string) bool {
		_, taken := s.comments[id]
		return taken
	})
	if err != nil {
		return nil, err
	}

	comment := entity.Comment{
		ID:         id,
		UserID:     userID,
		ActivityID: activityID,
		Content:    content,
		Rating:     rating,
		CreatedAt:  s.now(),
	}
	s.comments[id] = comment
	s.commentOrder = append(s.commentOrder, id)

	return &comment, nil
}

// ===================== Reads =====================

// FindUserByEmail matches emails case-insensitively. It returns nil, nil when no user matches.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[normalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	user := s.users[id]
	return &user, nil
}

func (s *Store) ActivityByID(id string) (entity.Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[id]
	a.Coordinates = cloneGeoPoint(a.Coordinates)
	return a, ok
}

func (s *Store) RegistrationByID(id string) (entity.Registration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, ok := s.registrations[id]
	return reg, ok
}

// AcceptedCount counts accepted registrations of one activity without copying the store.
func (s *Store) AcceptedCount(activityID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, reg := range s.registrations {
		if reg.ActivityID == activityID && reg.Status == entity.RegistrationStatusAccepted {
			n++
		}
	}
	return n
}

// Snapshot copies the current state. The copy never changes afterwards.
func (s *Store) Snapshot() *entity.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &entity.Snapshot{
		Users:             make(map[string]entity.User, len(s.users)),
		Activities:        make(map[string]entity.Activity, len(s.activities)),
		Registrations:     make(map[string]entity.Registration, len(s.registrations)),
		Comments:          make(map[string]entity.Comment, len(s.comments)),
		UserOrder:         append([]string(nil), s.userOrder...),
		ActivityOrder:     append([]string(nil), s.activityOrder...),
		RegistrationOrder: append([]string(nil), s.registrationOrder...),
		CommentOrder:      append([]string(nil), s.commentOrder...),
	}
	for k, v := range s.users {
		snap.Users[k] = v
	}
	for k, v := range s.activities {
		v.Coordinates = cloneGeoPoint(v.Coordinates)
		snap.Activities[k] = v
	}
	for k, v := range s.registrations {
		snap.Registrations[k] = v
	}
	for k, v := range s.comments {
		snap.Comments[k] = v
	}
	return snap
}

// ===================== helpers =====================

// checkRefs must be called with mu held.
func (s *Store) checkRefs(userID, activityID string) error {
	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("user %q: %w", userID, ErrUserNotFound)
	}
	if _, ok := s.activities[activityID]; !ok {
		return fmt.Errorf("activity %q: %w", activityID, ErrActivityNotFound)
	}
	return nil
}

func (s *Store) insertRegistration(userID, activityID string) (entity.Registration, error) {
	id, err := s.freshID(utils.PrefixRegistration, func(id string) bool {
		_, taken := s.registrations[id]
		return taken
	})
	if err != nil {
		return entity.Registration{}, err
	}

	reg := entity.Registration{
		ID:         id,
		UserID:     userID,
		ActivityID: activityID,
		Status:     entity.RegistrationStatusPending,
	}
	s.registrations[id] = reg
	s.registrationOrder = append(s.registrationOrder, id)

	logger.Info("Store:CreateRegistration", "registration_id", id, "user_id", userID, "activity_id", activityID)
	return reg, nil
}

// freshID asks the generator for an id not yet used in the target collection.
// A generator returning the same value repeatedly is reported instead of silently
// merging two entities under one key.
func (s *Store) freshID(prefix string, taken func(string) bool) (string, error) {
	const attempts = 3
	for i := 0; i < attempts; i++ {
		id := s.newID(prefix)
		if !taken(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate %s id: %w", prefix, ErrDuplicateID)
}

func cloneGeoPoint(p *entity.GeoPoint) *entity.GeoPoint {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
