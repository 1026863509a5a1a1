package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts counts credential verifications by outcome
	// (success, failure, rate_limited).
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nicu_login_attempts_total",
		Help: "Login attempts by outcome",
	}, []string{"outcome"})

	// AuthzDecisions counts edge authorization decisions by kind.
	AuthzDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nicu_authz_decisions_total",
		Help: "Edge authorization decisions by kind",
	}, []string{"decision"})

	// GuardDenials counts handler-level guard rejections by reason
	// (unauthenticated, forbidden).
	GuardDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nicu_guard_denials_total",
		Help: "Handler guard denials by reason",
	}, []string{"reason"})
)
