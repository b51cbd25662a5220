package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	storeOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "routinekeeper",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Count of routine store client operations by name and outcome.",
	}, []string{"operation", "outcome"})
	sessionTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "routinekeeper",
		Subsystem: "session",
		Name:      "transitions_total",
		Help:      "Count of session manager state transitions by target state.",
	}, []string{"state"})
)

func init() {
	prometheus.MustRegister(storeOps, sessionTransitions)
}

// RecordStoreOp counts one store client operation.
func RecordStoreOp(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	storeOps.WithLabelValues(operation, outcome).Inc()
}

// RecordSessionTransition counts one session state transition.
func RecordSessionTransition(state string) {
	sessionTransitions.WithLabelValues(state).Inc()
}
