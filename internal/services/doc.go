// Package services holds the application service layer between the HTTP
// transport and the pricing engine.
//
// EstimateService owns the loaded market profile and serves estimations
// against it; the profile can be hot-swapped with Reload. HealthService
// reports liveness. Prometheus counters and histograms for the estimation
// path live here rather than in the transport, so CLI callers are measured
// the same way as HTTP callers.
package services
