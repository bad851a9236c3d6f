package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every collector the CLI exposes. It is private to the
// process so short-lived commands do not pick up Go runtime collectors.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	APIRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Service calls by outcome (success, rejected, transport_error)",
		},
		[]string{"service", "operation", "outcome"},
	)

	ShapeAnomaliesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shape_anomalies_total",
			Help: "Payloads that did not match the expected shape and were defaulted",
		},
		[]string{"service", "operation"},
	)

	OptimisticMutationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimistic_mutations_total",
			Help: "Optimistic list mutations by action and terminal outcome",
		},
		[]string{"action", "outcome"},
	)

	DemoFallbacksTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "approvals_demo_fallbacks_total",
			Help: "Approval loads that fell back to the demo dataset",
		},
	)
)

// Dump writes every non-zero counter as "name{labels} value" lines.
func Dump(w io.Writer) error {
	families, err := Registry.Gather()
	if err != nil {
		return err
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			value := m.GetCounter().GetValue()
			if value == 0 {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, value))
		}
	}
	sort.Strings(lines)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
