package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outings-api/modules/activity/entity"
)

func TestDerivations_AcceptedCount(t *testing.T) {
	f := newFixture(t, Policy{})
	d := f.derivations()

	for _, a := range d.Snapshot().ListActivities() {
		want := 0
		for _, r := range d.Snapshot().ListRegistrations() {
			if r.ActivityID == a.ID && r.Status == entity.RegistrationStatusAccepted {
				want++
			}
		}
		assert.Equal(t, want, d.AcceptedCount(a.ID), a.ID)
	}
	assert.Equal(t, 1, d.AcceptedCount("act-1"))
	assert.Equal(t, 19, d.RemainingCapacity("act-1"))
	assert.Equal(t, 0, d.AcceptedCount("missing"))
}

func TestDerivations_AverageRating(t *testing.T) {
	f := newFixture(t, Policy{})
	d := f.derivations()

	assert.InDelta(t, 4.5, d.AverageRating("act-4"), 1e-9)
	assert.Equal(t, 0.0, d.AverageRating("act-1"))
	assert.Equal(t, 0.0, d.AverageRating("missing"))
}

func TestDerivations_IsRegisteredFollowsWorkflow(t *testing.T) {
	f := newFixture(t, Policy{})
	ctx := context.Background()

	assert.False(t, f.derivations().IsRegistered("user-3", "act-2"))

	_, appErr := f.workflow.Register(ctx, "user-3", "act-2")
	require.Nil(t, appErr)
	assert.True(t, f.derivations().IsRegistered("user-3", "act-2"))

	status, ok := f.derivations().RegistrationStatus("user-3", "act-2")
	assert.True(t, ok)
	assert.Equal(t, entity.RegistrationStatusPending, status)

	_, appErr = f.workflow.Unregister(ctx, "user-3", "act-2")
	require.Nil(t, appErr)
	assert.False(t, f.derivations().IsRegistered("user-3", "act-2"))
}

func TestDerivations_RegistrationStatusUsesLatestRecord(t *testing.T) {
	f := newFixture(t, Policy{})
	ctx := context.Background()

	first, appErr := f.workflow.Register(ctx, "user-3", "act-2")
	require.Nil(t, appErr)
	_, appErr = f.workflow.Decide(ctx, first.ID, entity.RegistrationStatusRejected)
	require.Nil(t, appErr)
	_, appErr = f.workflow.Register(ctx, "user-3", "act-2")
	require.Nil(t, appErr)

	status, ok := f.derivations().RegistrationStatus("user-3", "act-2")
	assert.True(t, ok)
	assert.Equal(t, entity.RegistrationStatusPending, status)
}

func TestDerivations_JoinGate(t *testing.T) {
	f := newFixture(t, Policy{})
	ctx := context.Background()

	small := f.createActivity(t, "user-1", "Five a side", testNow.AddDate(0, 0, 2), 1)
	reg, appErr := f.workflow.Register(ctx, "user-2", small.ID)
	require.Nil(t, appErr)
	_, appErr = f.workflow.Decide(ctx, reg.ID, entity.RegistrationStatusAccepted)
	require.Nil(t, appErr)

	d := f.derivations()
	tests := []struct {
		name       string
		userID     string
		activityID string
		want       JoinGate
	}{
		{"unknown activity", "user-1", "missing", JoinNotFound},
		{"anonymous", "", "act-2", JoinAnonymous},
		{"organizer", "user-1", "act-1", JoinOrganizer},
		{"already registered", "user-2", "act-1", JoinRegistered},
		{"past", "user-1", "act-4", JoinPast},
		{"full", "user-3", small.ID, JoinFull},
		{"open", "user-3", "act-2", JoinOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.JoinGate(tt.userID, tt.activityID))
		})
	}
}

func TestDerivations_CanComment(t *testing.T) {
	f := newFixture(t, Policy{})
	d := f.derivations()

	assert.True(t, d.CanComment("user-2", "act-4"))
	assert.False(t, d.CanComment("user-1", "act-4"), "not registered")
	assert.False(t, d.CanComment("user-2", "act-1"), "not over yet")
	assert.False(t, d.CanComment("", "act-4"))
}
