package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// identityFailures counts provider failures per operation
	// (sign_in, sign_up, sign_out).
	identityFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studium_identity_failures_total",
			Help: "Identity provider failures by operation.",
		},
		[]string{"operation"},
	)

	// cardsImported counts cards appended by notes import.
	cardsImported = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "studium_cards_imported_total",
			Help: "Flashcards generated from imported notes.",
		},
	)
)

func init() {
	prometheus.MustRegister(identityFailures, cardsImported)
}
