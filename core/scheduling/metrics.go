package scheduling

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	passDuration       *prometheus.HistogramVec
	assignmentsTotal   *prometheus.CounterVec
	allocationFailures *prometheus.CounterVec
	disruptionsTotal   *prometheus.CounterVec
	flightsGauge       *prometheus.GaugeVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.HistogramVec, *prometheus.CounterVec, *prometheus.CounterVec, *prometheus.CounterVec, *prometheus.GaugeVec) {
	dur := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "allocation_pass_duration_seconds",
			Help:    "Duration of runway and crew allocation passes",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
	asn := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocation_assignments_total",
			Help: "Number of flights given a runway or crew",
		},
		[]string{"kind"},
	)
	fail := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocation_failures_total",
			Help: "Number of flights left unassigned and charged a structural delay",
		},
		[]string{"kind"},
	)
	dis := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "disruptions_total",
			Help: "Number of simulated disruptions and reschedules",
		},
		[]string{"kind"},
	)
	fl := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "flights_by_status",
			Help: "Number of registered flights per status",
		},
		[]string{"status"},
	)
	return dur, asn, fail, dis, fl
}

func init() {
	passDuration, assignmentsTotal, allocationFailures, disruptionsTotal, flightsGauge = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers scheduling metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(passDuration, assignmentsTotal, allocationFailures, disruptionsTotal, flightsGauge)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	passDuration, assignmentsTotal, allocationFailures, disruptionsTotal, flightsGauge = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
