package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "outings"

var (
	ActivitiesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_created_total",
		Help:      "Activities created by organizers.",
	})

	// RegistrationActions counts join requests and withdrawals, labelled by action.
	RegistrationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registration_actions_total",
		Help:      "Registration workflow actions.",
	}, []string{"action"})

	RegistrationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registration_decisions_total",
		Help:      "Organizer decisions on join requests, labelled by resulting status.",
	}, []string{"status"})

	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Reviews left on past activities.",
	})

	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "In-app notifications delivered, labelled by type.",
	}, []string{"type"})

	GenerationCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generation_calls_total",
		Help:      "Calls to the text generation collaborator, labelled by outcome.",
	}, []string{"outcome"})
)

const (
	ActionRegister   = "register"
	ActionUnregister = "unregister"

	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeCancelled = "cancelled"
)
