package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"outings-api/modules/activity/entity"
	"outings-api/modules/activity/repository"
	geomap "outings-api/modules/geomap/service"
)

var testNow = time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store    *repository.Store
	workflow *RegistrationWorkflow
	svc      *ActivityService
}

func newFixture(t *testing.T, policy Policy) *fixture {
	t.Helper()

	store := repository.NewStore(repository.WithClock(func() time.Time { return testNow }))
	seed, err := repository.DefaultSeed(testNow)
	require.NoError(t, err)
	require.NoError(t, store.Seed(context.Background(), seed))

	workflow := NewRegistrationWorkflow(store, policy)
	projector := NewViewProjector(3, geomap.NewMapProjector())
	svc := NewActivityService(store, workflow, projector,
		WithNow(func() time.Time { return testNow }),
		WithLocation(time.UTC),
	)
	return &fixture{store: store, workflow: workflow, svc: svc}
}

func (f *fixture) derivations() *Derivations {
	return NewDerivations(f.store.Snapshot(), testNow)
}

func (f *fixture) createActivity(t *testing.T, organizerID, title string, at time.Time, capacity int) entity.Activity {
	t.Helper()
	a, err := f.store.CreateActivity(context.Background(), entity.ActivityData{
		Title:    title,
		Location: "Annecy",
		Datetime: at,
		Capacity: capacity,
		Type:     entity.ActivityTypeSport,
	}, organizerID)
	require.NoError(t, err)
	return *a
}

func activityOf(id string, typ entity.ActivityType, at time.Time) entity.Activity {
	return entity.Activity{ID: id, Title: id, Type: typ, Datetime: at, Capacity: 5}
}

func ids(activities []entity.Activity) []string {
	out := make([]string, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.ID)
	}
	return out
}
