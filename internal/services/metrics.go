package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// ordersReceived counts processOrder calls by outcome:
	// ignored, malformed, duplicate, completed, error.
	ordersReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personalizer_orders_total",
			Help: "Orders received by the intake pipeline, by outcome.",
		},
		[]string{"outcome"},
	)

	// intakeTransitions counts stored status changes by target status.
	intakeTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personalizer_intake_transitions_total",
			Help: "Intake record status transitions, by target status.",
		},
		[]string{"status"},
	)

	// compileDuration observes production compilation time.
	compileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "personalizer_compile_duration_seconds",
			Help:    "Time spent compiling production records.",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		},
	)

	// catalogsCreated counts default catalogs created on first access.
	catalogsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "personalizer_default_catalogs_created_total",
			Help: "Default catalogs created lazily on first resolve.",
		},
	)
)

func init() {
	prometheus.MustRegister(ordersReceived, intakeTransitions, compileDuration, catalogsCreated)
}
