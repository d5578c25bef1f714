// Package metrics exposes prometheus counters for the admission pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// admission decisions by outcome
	Decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surferbot_admission_decisions_total",
		Help: "Admission decisions by outcome",
	}, []string{"outcome"})

	// commands dispatched by name
	Commands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surferbot_commands_total",
		Help: "Commands dispatched by name",
	}, []string{"command"})

	// image generation attempts by result
	Generations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surferbot_generations_total",
		Help: "Image generation attempts by result",
	}, []string{"result"})

	// counter store failures by operation
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surferbot_store_errors_total",
		Help: "Counter store failures by operation",
	}, []string{"op"})
)
