// Package metrics registers the Prometheus collectors of the service and exposes
// fiber handlers for recording HTTP traffic and serving /metrics.
package metrics
