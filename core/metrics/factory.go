package metrics

import (
	"fmt"

	"github.com/kilianp07/flightops/core/factory"
)

var sinkRegistry = factory.NewRegistry[MetricsSink]()

// RegisterMetricsSink adds a metrics sink factory identified by name.
func RegisterMetricsSink(name string, f factory.Factory[MetricsSink]) error {
	return sinkRegistry.Register(name, f)
}

// SinkTypes lists the registered sink names.
func SinkTypes() []string { return sinkRegistry.Names() }

// NewMetricsSink builds the sink chain for allocation passes. Each sink type
// may appear once: two prometheus sinks would register the same collectors.
// Several sinks are combined with a MultiSink.
func NewMetricsSink(cfgs []factory.ModuleConfig) (MetricsSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	seen := make(map[string]bool, len(cfgs))
	sinks := make([]MetricsSink, 0, len(cfgs))
	for _, c := range cfgs {
		if seen[c.Type] {
			return nil, fmt.Errorf("metrics sink %q configured twice", c.Type)
		}
		seen[c.Type] = true
		s, err := sinkRegistry.Create(c)
		if err != nil {
			return nil, fmt.Errorf("metrics sink %q: %w", c.Type, err)
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return NewMultiSink(sinks...), nil
}

// Recorders names what s can record beyond allocation passes: any of
// "disruption", "registry" and "notification". A MultiSink reports what at
// least one of its sinks records.
func Recorders(s MetricsSink) []string {
	var disruption, registry, notification bool
	sinks := []MetricsSink{s}
	if m, ok := s.(*MultiSink); ok {
		sinks = m.Sinks
	}
	for _, s := range sinks {
		_, d := s.(DisruptionRecorder)
		_, r := s.(RegistrySizeRecorder)
		_, n := s.(NotificationRecorder)
		disruption, registry, notification = disruption || d, registry || r, notification || n
	}
	var out []string
	if disruption {
		out = append(out, "disruption")
	}
	if registry {
		out = append(out, "registry")
	}
	if notification {
		out = append(out, "notification")
	}
	return out
}
