// Package telemetry wires OpenTelemetry tracing.
//
// Init installs a global tracer provider. Spans are exported over OTLP/HTTP when an
// endpoint is configured and dropped otherwise, so facades can open spans unconditionally.
package telemetry
