// Package metrics provides optional Prometheus instrumentation for
// tree.BuildWithMetrics and eval.EvaluateWithMetrics.
//
// Unlike a promauto-style global registration, Set is constructed
// against a caller-supplied prometheus.Registerer: a reusable kernel
// library must not force a process-global registration that panics
// the second time it is imported into the same process. A nil *Set is
// accepted everywhere as a no-op, so the hot path costs nothing when
// metrics are not wired.
package metrics
