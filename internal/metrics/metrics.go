// Package metrics declares the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess  = "success"
	StatusRejected = "rejected"
	StatusInvalid  = "invalid"
	StatusFailure  = "failure"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "academy_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// status: success/rejected (planet full)/invalid
	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_registrations_total",
			Help: "Total number of candidate registrations",
		},
		[]string{"status"},
	)

	QuizCompletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_quiz_completions_total",
			Help: "Total number of completed quizzes",
		},
		[]string{"status"},
	)

	// status: success/rejected (limit or race lost)/failure (notification)
	PadawanAcceptances = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_padawan_acceptances_total",
			Help: "Total number of padawan acceptance attempts",
		},
		[]string{"status"},
	)

	MailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_mails_total",
			Help: "Total number of mails handed to the transport",
		},
		[]string{"status"},
	)
)
