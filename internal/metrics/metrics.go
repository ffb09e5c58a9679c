// Package metrics объявляет прикладные счётчики Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PaymentsInitiated считает попытки инициировать платёж через шлюз
	// в разрезе исхода: ok, validation_error, gateway_error, network_error.
	PaymentsInitiated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "preocrypto",
			Subsystem: "payments",
			Name:      "initiated_total",
			Help:      "Total number of payment initiation attempts.",
		},
		[]string{"outcome"},
	)

	// WebhookEvents считает обработанные события платёжного шлюза.
	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "preocrypto",
			Subsystem: "payments",
			Name:      "webhook_events_total",
			Help:      "Total number of processed gateway webhook events.",
		},
		[]string{"event_type"},
	)
)
