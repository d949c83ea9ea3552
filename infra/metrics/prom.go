package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/flightops/core/metrics"
)

// PromSink records allocation outcomes in Prometheus metrics.
type PromSink struct {
	passes        *prometheus.CounterVec
	penalty       *prometheus.CounterVec
	scores        *prometheus.HistogramVec
	disruptions   *prometheus.CounterVec
	registry      *prometheus.GaugeVec
	notifications *prometheus.CounterVec
}

// NewPromSink registers sink metrics on the default Prometheus registerer.
// The /metrics endpoint is served by the application.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// that are already registered are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "allocation_flight_outcomes_total",
			Help: "Per-flight allocation outcomes",
		}, []string{"kind", "assigned"}),
		penalty: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "allocation_penalty_minutes_total",
			Help: "Structural delay minutes charged by allocation failures",
		}, []string{"kind"}),
		scores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crew_assignment_score",
			Help:    "Score of the winning crew candidate",
			Buckets: []float64{25, 50, 75, 100, 125, 150},
		}, []string{"kind"}),
		disruptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "disruption_delay_minutes_total",
			Help: "Minutes of delay introduced by disruptions",
		}, []string{"kind"}),
		registry: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "registry_entities",
			Help: "Entities per registry and state",
		}, []string{"registry", "state"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notifications appended to the feed by severity",
		}, []string{"severity"}),
	}
	var err error
	if s.passes, err = register(reg, s.passes); err != nil {
		return nil, err
	}
	if s.penalty, err = register(reg, s.penalty); err != nil {
		return nil, err
	}
	if s.scores, err = register(reg, s.scores); err != nil {
		return nil, err
	}
	if s.disruptions, err = register(reg, s.disruptions); err != nil {
		return nil, err
	}
	if s.registry, err = register(reg, s.registry); err != nil {
		return nil, err
	}
	if s.notifications, err = register(reg, s.notifications); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPass counts each flight outcome of a pass.
func (s *PromSink) RecordPass(recs []coremetrics.PassRecord) error {
	for _, r := range recs {
		s.passes.WithLabelValues(r.Kind, strconv.FormatBool(r.Assigned)).Inc()
		if r.Assigned && r.Kind == "crew" {
			s.scores.WithLabelValues(r.Kind).Observe(float64(r.Score))
		}
		if r.PenaltyMinutes > 0 {
			s.penalty.WithLabelValues(r.Kind).Add(float64(r.PenaltyMinutes))
		}
	}
	return nil
}

// RecordDisruption adds the disruption delay.
func (s *PromSink) RecordDisruption(ev coremetrics.DisruptionEvent) error {
	s.disruptions.WithLabelValues(ev.Kind).Add(float64(ev.Minutes))
	return nil
}

// RecordRegistrySizes sets registry gauges.
func (s *PromSink) RecordRegistrySizes(sz coremetrics.RegistrySizes) error {
	s.registry.WithLabelValues("runway", "in_use").Set(float64(sz.InUse))
	s.registry.WithLabelValues("runway", "available").Set(float64(sz.Runways - sz.InUse))
	s.registry.WithLabelValues("crew", "on_duty").Set(float64(sz.OnDuty))
	s.registry.WithLabelValues("crew", "available").Set(float64(sz.Crew - sz.OnDuty))
	s.registry.WithLabelValues("flight", "total").Set(float64(sz.Flights))
	return nil
}

// RecordNotification counts feed entries by severity.
func (s *PromSink) RecordNotification(ev coremetrics.NotificationEvent) error {
	s.notifications.WithLabelValues(ev.Severity).Inc()
	return nil
}
