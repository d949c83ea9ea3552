// Package infra contains technical adapters: the zerolog logger, metrics
// sinks, the MQTT notification publisher, Sentry monitoring and the
// registry snapshot files. These packages depend only on the interfaces
// defined in the core packages.
package infra
