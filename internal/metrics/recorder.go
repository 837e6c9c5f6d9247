package metrics

import (
	"errors"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/san-kum/fibsearch/internal/fibsearch"
)

// Outcome labels for fibsearch_solves_total.
const (
	OutcomeOK                = "ok"
	OutcomeInvalidInput      = "invalid_input"
	OutcomeEvaluationError   = "evaluation_error"
	OutcomeToleranceTooSmall = "tolerance_too_small"
	OutcomeError             = "error"
)

// Recorder collects solver metrics on a private registry, so several
// recorders can coexist in one process and in tests.
type Recorder struct {
	registry    *prometheus.Registry
	solves      *prometheus.CounterVec
	evaluations prometheus.Counter
	iterations  prometheus.Histogram
	duration    prometheus.Histogram
	steps       prometheus.Counter
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		solves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fibsearch_solves_total",
			Help: "Total number of searches by outcome",
		}, []string{"outcome"}),
		evaluations: factory.NewCounter(prometheus.CounterOpts{
			Name: "fibsearch_function_evaluations_total",
			Help: "Objective evaluations spent by successful searches",
		}),
		iterations: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fibsearch_iterations",
			Help:    "Fibonacci index n of successful searches",
			Buckets: prometheus.LinearBuckets(5, 5, 18),
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fibsearch_solve_duration_seconds",
			Help:    "Wall time of one search",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		steps: factory.NewCounter(prometheus.CounterOpts{
			Name: "fibsearch_reduction_steps_total",
			Help: "Interval reductions observed while searches run",
		}),
	}
}

// Observe records one finished search. res is ignored when err is non-nil.
func (r *Recorder) Observe(res *fibsearch.Result, err error, elapsed time.Duration) {
	r.solves.WithLabelValues(Outcome(err)).Inc()
	r.duration.Observe(elapsed.Seconds())
	if err != nil || res == nil {
		return
	}
	r.evaluations.Add(float64(res.Evaluations))
	r.iterations.Observe(float64(res.Iterations))
}

// OnIteration lets a Recorder be attached to a solver as an observer.
func (r *Recorder) OnIteration(fibsearch.IterationRecord) {
	r.steps.Inc()
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteText dumps every metric in the Prometheus text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// Outcome classifies a solver error into a metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, fibsearch.ErrInvalidInterval), errors.Is(err, fibsearch.ErrInvalidTolerance):
		return OutcomeInvalidInput
	case errors.Is(err, fibsearch.ErrFunctionEvaluation):
		return OutcomeEvaluationError
	case errors.Is(err, fibsearch.ErrToleranceTooSmall):
		return OutcomeToleranceTooSmall
	default:
		return OutcomeError
	}
}
