package repository

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"outings-api/core/logger"
	"outings-api/modules/activity/entity"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Users         []entity.User      `yaml:"users"`
	Activities    []seedActivity     `yaml:"activities"`
	Registrations []seedRegistration `yaml:"registrations"`
	Comments      []seedComment      `yaml:"comments"`
}

type seedActivity struct {
	ID          string           `yaml:"id"`
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Location    string           `yaml:"location"`
	Coordinates *entity.GeoPoint `yaml:"coordinates"`
	StartsIn    string           `yaml:"starts_in"`
	Capacity    int              `yaml:"capacity"`
	Image       string           `yaml:"image"`
	Type        string           `yaml:"type"`
	OrganizerID string           `yaml:"organizer_id"`
}

type seedRegistration struct {
	ID         string `yaml:"id"`
	UserID     string `yaml:"user_id"`
	ActivityID string `yaml:"activity_id"`
	Status     string `yaml:"status"`
}

type seedComment struct {
	ID         string `yaml:"id"`
	UserID     string `yaml:"user_id"`
	ActivityID string `yaml:"activity_id"`
	Content    string `yaml:"content"`
	Rating     int    `yaml:"rating"`
}

// SeedData is a fully resolved initial state. Activities are listed in store order.
type SeedData struct {
	Users         []entity.User
	Activities    []entity.Activity
	Registrations []entity.Registration
	Comments      []entity.Comment
}

// DefaultSeed parses the embedded demo catalogue relative to now.
func DefaultSeed(now time.Time) (*SeedData, error) {
	return ParseSeed(seedYAML, now)
}

// ParseSeed decodes a seed document. starts_in offsets are resolved against now,
// which is also used as every created_at.
func ParseSeed(raw []byte, now time.Time) (*SeedData, error) {
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	data := &SeedData{Users: file.Users}

	for _, a := range file.Activities {
		offset, err := time.ParseDuration(a.StartsIn)
		if err != nil {
			return nil, fmt.Errorf("activity %s starts_in: %w", a.ID, err)
		}
		t := entity.ActivityType(a.Type)
		if !t.IsValid() {
			return nil, fmt.Errorf("activity %s: unknown type %q", a.ID, a.Type)
		}
		data.Activities = append(data.Activities, entity.Activity{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Location:    a.Location,
			Coordinates: a.Coordinates,
			Datetime:    now.Add(offset),
			Capacity:    a.Capacity,
			Image:       a.Image,
			Type:        t,
			OrganizerID: a.OrganizerID,
			CreatedAt:   now,
		})
	}

	for _, r := range file.Registrations {
		status := entity.RegistrationStatus(r.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("registration %s: unknown status %q", r.ID, r.Status)
		}
		data.Registrations = append(data.Registrations, entity.Registration{
			ID:         r.ID,
			UserID:     r.UserID,
			ActivityID: r.ActivityID,
			Status:     status,
		})
	}

	for _, c := range file.Comments {
		data.Comments = append(data.Comments, entity.Comment{
			ID:         c.ID,
			UserID:     c.UserID,
			ActivityID: c.ActivityID,
			Content:    c.Content,
			Rating:     c.Rating,
			CreatedAt:  now,
		})
	}

	return data, nil
}

// Seed loads an initial state into an empty store. Every reference is checked before
// anything is written, so a bad seed leaves the store untouched.
func (s *Store) Seed(ctx context.Context, data *SeedData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users)+len(s.activities)+len(s.registrations)+len(s.comments) > 0 {
		return fmt.Errorf("seed: store is not empty")
	}
	if err := validateSeed(data); err != nil {
		return err
	}

	for _, u := range data.Users {
		s.users[u.ID] = u
		s.usersByEmail[normalizeEmail(u.Email)] = u.ID
		s.userOrder = append(s.userOrder, u.ID)
	}
	for _, a := range data.Activities {
		s.activities[a.ID] = a
		s.activityOrder = append(s.activityOrder, a.ID)
	}
	for _, r := range data.Registrations {
		s.registrations[r.ID] = r
		s.registrationOrder = append(s.registrationOrder, r.ID)
	}
	for _, c := range data.Comments {
		s.comments[c.ID] = c
		s.commentOrder = append(s.commentOrder, c.ID)
	}

	logger.Info("Store:Seed",
		"users", len(data.Users),
		"activities", len(data.Activities),
		"registrations", len(data.Registrations),
		"comments", len(data.Comments),
	)
	return nil
}

func validateSeed(data *SeedData) error {
	users := make(map[string]struct{}, len(data.Users))
	emails := make(map[string]struct{}, len(data.Users))
	for _, u := range data.Users {
		if _, dup := users[u.ID]; dup {
			return fmt.Errorf("seed user %s: %w", u.ID, ErrDuplicateID)
		}
		email := normalizeEmail(u.Email)
		if _, dup := emails[email]; dup {
			return fmt.Errorf("seed user %s: duplicate email %s", u.ID, u.Email)
		}
		users[u.ID] = struct{}{}
		emails[email] = struct{}{}
	}

	activities := make(map[string]struct{}, len(data.Activities))
	for _, a := range data.Activities {
		if _, dup := activities[a.ID]; dup {
			return fmt.Errorf("seed activity %s: %w", a.ID, ErrDuplicateID)
		}
		if _, ok := users[a.OrganizerID]; !ok {
			return fmt.Errorf("seed activity %s organizer %s: %w", a.ID, a.OrganizerID, ErrUserNotFound)
		}
		activities[a.ID] = struct{}{}
	}

	refs := func(kind, id, userID, activityID string) error {
		if _, ok := users[userID]; !ok {
			return fmt.Errorf("seed %s %s user %s: %w", kind, id, userID, ErrUserNotFound)
		}
		if _, ok := activities[activityID]; !ok {
			return fmt.Errorf("seed %s %s activity %s: %w", kind, id, activityID, ErrActivityNotFound)
		}
		return nil
	}

	regs := make(map[string]struct{}, len(data.Registrations))
	for _, r := range data.Registrations {
		if _, dup := regs[r.ID]; dup {
			return fmt.Errorf("seed registration %s: %w", r.ID, ErrDuplicateID)
		}
		if err := refs("registration", r.ID, r.UserID, r.ActivityID); err != nil {
			return err
		}
		regs[r.ID] = struct{}{}
	}

	comments := make(map[string]struct{}, len(data.Comments))
	for _, c := range data.Comments {
		if _, dup := comments[c.ID]; dup {
			return fmt.Errorf("seed comment %s: %w", c.ID, ErrDuplicateID)
		}
		if err := refs("comment", c.ID, c.UserID, c.ActivityID); err != nil {
			return err
		}
		comments[c.ID] = struct{}{}
	}
	return nil
}
