/*
Package observability exposes dispatch activity to operators.

Metrics turns lifecycle events into Prometheus counters and histograms,
LogHooks writes them to a structured logger, and Handler serves /metrics and
/healthz on a small chi router for the host's admin port. Combine hook sets
with domain.ChainHooks.
*/
package observability
