// Package infra contains technical adapters: the zerolog logger, Prometheus
// and InfluxDB sinks, MQTT telemetry, file journals and Sentry monitoring.
// These packages depend only on the interfaces defined in the core packages.
package infra
