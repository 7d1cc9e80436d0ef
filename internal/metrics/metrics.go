// Package metrics exposes prometheus counters for game activity, served at
// /metrics by the HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registrations counts successful user registrations.
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scavhunt_registrations_total",
		Help: "Number of users registered.",
	})

	// Answers counts riddle submissions by result (correct/wrong).
	Answers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scavhunt_answers_total",
		Help: "Number of riddle answers submitted.",
	}, []string{"result"})

	// FaceComparisons counts delegated face-similarity calls by result
	// (match/no_match/error).
	FaceComparisons = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scavhunt_face_comparisons_total",
		Help: "Number of face comparisons performed.",
	}, []string{"result"})

	// CheckpointCompletions counts checkpoint clears by checkpoint number.
	CheckpointCompletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scavhunt_checkpoint_completions_total",
		Help: "Number of checkpoint completions.",
	}, []string{"checkpoint"})

	// GamesStarted counts admin start-game transitions.
	GamesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scavhunt_games_started_total",
		Help: "Number of games started.",
	})
)
