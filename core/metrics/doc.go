// Package metrics defines the sinks that receive allocation and disruption
// outcomes from the scheduling engine. Sinks such as the Prometheus and
// InfluxDB implementations in infra/metrics are created from configuration
// through NewMetricsSink and combined with a MultiSink when more than one is
// configured.
package metrics
