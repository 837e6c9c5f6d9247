package sweep

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/fibsearch/internal/expr"
	"github.com/san-kum/fibsearch/internal/fibsearch"
	"github.com/san-kum/fibsearch/internal/logging"
	"github.com/san-kum/fibsearch/internal/metrics"
)

// Job is one search of a sweep.
type Job struct {
	Function  string  `json:"function"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Tolerance float64 `json:"tolerance"`
}

// Outcome pairs a job with its result or error. Exactly one of Result and
// Err is set.
type Outcome struct {
	Job      Job
	Result   *fibsearch.Result
	Err      error
	Duration time.Duration
}

// Runner solves jobs concurrently. Zero fields take defaults: the package
// default solver settings, one worker, a fresh expression cache, no logging
// and no metrics.
type Runner struct {
	Solver   *fibsearch.Solver
	Cache    *expr.Cache
	Workers  int
	Logger   logging.Logger
	Recorder *metrics.Recorder

	// Progress, if set, is called after each job with the number finished.
	// It may be called from several goroutines.
	Progress func(done, total int)
}

// Run solves every job and returns outcomes in input order. A failing job
// records its error and does not stop the others. Cancelling ctx stops
// scheduling; unstarted jobs get ctx's error and Run returns it.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	solver := r.Solver
	if solver == nil {
		solver = fibsearch.NewSolver()
	}
	cache := r.Cache
	if cache == nil {
		cache = expr.NewCache(len(jobs))
	}
	var logger logging.Logger = logging.Nop{}
	if r.Logger != nil {
		logger = r.Logger
	}
	workers := max(r.Workers, 1)

	tracer := otel.Tracer("fibsearch/sweep")
	ctx, span := tracer.Start(ctx, "Sweep")
	defer span.End()
	span.SetAttributes(attribute.Int("jobs", len(jobs)), attribute.Int("workers", workers))

	outcomes := make([]Outcome, len(jobs))
	var done atomic.Int64

	var g errgroup.Group
	g.SetLimit(workers)
	for i, job := range jobs {
		idx, job := i, job
		if err := ctx.Err(); err != nil {
			outcomes[idx] = Outcome{Job: job, Err: err}
			continue
		}
		g.Go(func() error {
			// g.Go may have waited for a free worker while ctx was cancelled
			if err := ctx.Err(); err != nil {
				outcomes[idx] = Outcome{Job: job, Err: err}
				return nil
			}
			outcomes[idx] = r.solve(ctx, solver, cache, job)
			n := int(done.Add(1))
			if r.Progress != nil {
				r.Progress(n, len(jobs))
			}
			if err := outcomes[idx].Err; err != nil {
				logger.Warn("sweep job failed",
					logging.Int("job", idx),
					logging.String("function", job.Function),
					logging.Float64("tolerance", job.Tolerance),
					logging.Err(err),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return outcomes, err
	}
	logger.Info("sweep finished",
		logging.Int("jobs", len(jobs)),
		logging.Int("failed", Failed(outcomes)),
	)
	return outcomes, nil
}

func (r *Runner) solve(ctx context.Context, solver *fibsearch.Solver, cache *expr.Cache, job Job) Outcome {
	_, span := otel.Tracer("fibsearch/sweep").Start(ctx, "Solve")
	defer span.End()
	span.SetAttributes(
		attribute.String("function", job.Function),
		attribute.Float64("a", job.A),
		attribute.Float64("b", job.B),
		attribute.Float64("tolerance", job.Tolerance),
	)

	start := time.Now()
	res, err := solveJob(solver, cache, job)
	out := Outcome{Job: job, Result: res, Err: err, Duration: time.Since(start)}

	if r.Recorder != nil {
		r.Recorder.Observe(res, err, out.Duration)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("iterations", res.Iterations))
	}
	return out
}

func solveJob(solver *fibsearch.Solver, cache *expr.Cache, job Job) (*fibsearch.Result, error) {
	if err := fibsearch.Validate(job.A, job.B, job.Tolerance); err != nil {
		return nil, err
	}
	e, err := cache.Parse(job.Function)
	if err != nil {
		return nil, &fibsearch.FunctionEvaluationError{Expr: job.Function, Parse: true, Err: err}
	}
	return solver.Solve(e, job.A, job.B, job.Tolerance)
}

// Failed counts outcomes that carry an error.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
