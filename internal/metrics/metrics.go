package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mutations counts successful writes by entity and action.
var Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "carometro_mutations_total",
	Help: "Successful entity mutations.",
}, []string{"entity", "action"})

// AuditWriteFailures counts audit entries that could not be persisted.
var AuditWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "carometro_audit_write_failures_total",
	Help: "Audit log entries dropped after queue and fallback both failed.",
})
