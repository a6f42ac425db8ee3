package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tripmates/itinerary-backend/internal/constant"
)

var (
	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(constant.ServiceName, "generation", "duration_seconds"),
		Help:    "Duration of activity generation requests in seconds",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	}, []string{"outcome"})
	ItineraryWorkflow = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(constant.ServiceName, "itinerary", "workflow_total"),
		Help: "Itinerary workflow invocations by operation and outcome",
	}, []string{"operation", "outcome"})
	ActivitiesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(constant.ServiceName, "itinerary", "activities_created_total"),
		Help: "Activities persisted by committed itinerary creations",
	})
	EventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(constant.ServiceName, "events", "publish_failures_total"),
		Help: "Itinerary lifecycle events that could not be published",
	}, []string{"subject"})
)
