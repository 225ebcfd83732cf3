package violation

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts violations by kind and category before delegating to the
// next handler.
//
// The counter is incremented before delegation because the next handler
// usually does not return.
type Metrics struct {
	next       Handler
	violations *prometheus.CounterVec
}

// Instrument wraps next with a violation counter registered on reg.
//
// Metric: contract_violations_total{kind, category}.
//
// If an identical counter is already registered on reg (for example by an
// earlier Instrument call), the existing counter is reused. A nil reg leaves
// the counter unregistered.
func Instrument(next Handler, reg prometheus.Registerer) (*Metrics, error) {
	cv := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contract",
		Name:      "violations_total",
		Help:      "Number of contract violations reported, by contract kind and predicate category.",
	}, []string{"kind", "category"})

	if reg != nil {
		if err := reg.Register(cv); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, fmt.Errorf("register violation counter: %w", err)
			}
			existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return nil, fmt.Errorf("register violation counter: conflicting collector %T", are.ExistingCollector)
			}
			cv = existing
		}
	}

	return &Metrics{next: next, violations: cv}, nil
}

// Handle counts the violation and delegates.
func (m *Metrics) Handle(r *Report) {
	m.violations.WithLabelValues(r.Kind.String(), r.Category.String()).Inc()
	if m.next != nil {
		m.next.Handle(r)
	}
}

// Collector returns the underlying counter.
func (m *Metrics) Collector() *prometheus.CounterVec {
	return m.violations
}
