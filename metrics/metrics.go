package metrics

import "github.com/prometheus/client_golang/prometheus"

// Set holds the histograms tree.BuildWithMetrics and
// eval.EvaluateWithMetrics report into. The zero value is not usable;
// construct one with New, or pass a nil *Set anywhere one is accepted
// to disable instrumentation entirely.
type Set struct {
	buildDuration    prometheus.Histogram
	buildNodeCount   prometheus.Histogram
	evaluateDuration prometheus.Histogram
}

// New registers a Set's collectors into reg and returns it. reg is
// typically a *prometheus.Registry the embedding application owns;
// passing the same reg into two New calls returns an error from the
// underlying Register call, exactly as registering any collector
// twice would.
func New(reg prometheus.Registerer) (*Set, error) {
	s := &Set{
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "barneshut_build_duration_seconds",
			Help:    "Wall-clock time spent in tree.Build.",
			Buckets: prometheus.DefBuckets,
		}),
		buildNodeCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "barneshut_build_node_count",
			Help:    "Number of nodes (internal and leaf) in a built tree.",
			Buckets: prometheus.ExponentialBuckets(8, 4, 10),
		}),
		evaluateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "barneshut_evaluate_duration_seconds",
			Help:    "Wall-clock time spent in a single eval.Evaluate call.",
			Buckets: prometheus.ExponentialBuckets(1e-7, 4, 12),
		}),
	}
	for _, c := range []prometheus.Collector{s.buildDuration, s.buildNodeCount, s.evaluateDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ObserveBuild records one tree.Build call's node count and elapsed
// time. It is nil-safe: calling it on a nil *Set is a no-op, so
// tree.BuildWithMetrics never needs its own nil check beyond the one
// guarding the call itself.
func (s *Set) ObserveBuild(nodeCount int, elapsedSeconds float64) {
	if s == nil {
		return
	}
	s.buildDuration.Observe(elapsedSeconds)
	s.buildNodeCount.Observe(float64(nodeCount))
}

// ObserveEvaluate records one eval.Evaluate call's elapsed time.
func (s *Set) ObserveEvaluate(elapsedSeconds float64) {
	if s == nil {
		return
	}
	s.evaluateDuration.Observe(elapsedSeconds)
}
