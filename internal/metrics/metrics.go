package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewClaimRetriesTotal returns a Prometheus counter for the number of retry attempts performed by the motorcycle claimer
func NewClaimRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rental_claim_retries_total",
		Help: "Total number of retry attempts performed by the motorcycle claimer",
	})
}

// NewEventsConsumedTotal returns a Prometheus counter for the number of rental events consumed from Kafka
func NewEventsConsumedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rental_events_consumed_total",
		Help: "Total number of rental events consumed from Kafka",
	})
}

// NewResolutionsTotal returns a Prometheus counter vector for rental resolutions by outcome
func NewResolutionsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_resolutions_total",
		Help: "Total number of rental resolutions by outcome",
	}, []string{"outcome"})
}
