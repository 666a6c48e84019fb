// Package telemetry provides the Prometheus collectors and OpenTelemetry
// tracing used by the kite runtime.
//
// Both are optional. A nil *Metrics or *Tracer is valid and records
// nothing, so the runtime calls them unconditionally:
//
//	reg := prometheus.NewRegistry()
//	rt := kite.New(doc,
//	    kite.WithMetrics(telemetry.NewMetrics(telemetry.WithRegistry(reg))),
//	    kite.WithTracer(telemetry.NewTracer()),
//	)
package telemetry
