package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/san-kum/fibsearch/internal/config"
	"github.com/san-kum/fibsearch/internal/export"
	"github.com/san-kum/fibsearch/internal/fibsearch"
	"github.com/san-kum/fibsearch/internal/logging"
	"github.com/san-kum/fibsearch/internal/viz"
)

type solveOptions struct {
	function string
	a, b     float64
	tol      float64
	maxIter  int

	preset     string
	configFile string

	save     bool
	csvPath  string
	svgPath  string
	jsonPath string
	quiet    bool
}

func (c *cli) newSolveCmd() *cobra.Command {
	opts := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "minimize f(x) on [a, b]",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.function, "function", "f", config.DefaultFunction, "expression in x")
	cmd.Flags().Float64Var(&opts.a, "a", config.DefaultA, "left bound")
	cmd.Flags().Float64Var(&opts.b, "b", config.DefaultB, "right bound")
	cmd.Flags().Float64Var(&opts.tol, "tol", config.DefaultTolerance, "final interval width")
	cmd.Flags().IntVar(&opts.maxIter, "max-iter", fibsearch.DefaultMaxIterations, "fibonacci index ceiling")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "use a named problem (see 'fibsearch presets')")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file path (yaml)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "store the run in the data directory")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "write the iteration trace as CSV")
	cmd.Flags().StringVar(&opts.svgPath, "svg", "", "write a plot as SVG")
	cmd.Flags().StringVar(&opts.jsonPath, "json", "", "write the full result as JSON")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the minimizer and minimum")
	return cmd
}

// resolve layers the solve flags over the base configuration.
func (o *solveOptions) resolve(c *cli, cmd *cobra.Command) (*config.Config, error) {
	cfg, err := c.baseConfig(cmd, o.preset, o.configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("function") {
		cfg.Function = o.function
	}
	if flags.Changed("a") {
		cfg.A = o.a
	}
	if flags.Changed("b") {
		cfg.B = o.b
	}
	if flags.Changed("tol") {
		cfg.Tolerance = o.tol
	}
	if flags.Changed("max-iter") {
		cfg.MaxIterations = o.maxIter
	}
	if err := cfg.Validate(); err != nil {
		return nil, &configError{err}
	}
	return cfg, nil
}

func (c *cli) runSolve(cmd *cobra.Command, opts *solveOptions) error {
	cfg, err := opts.resolve(c, cmd)
	if err != nil {
		return err
	}
	logger := c.logger(cfg, "solve")
	theme := c.themeFor(cfg)

	_, span := otel.Tracer("fibsearch/cli").Start(cmd.Context(), "Solve")
	defer span.End()
	span.SetAttributes(
		attribute.String("function", cfg.Function),
		attribute.Float64("a", cfg.A),
		attribute.Float64("b", cfg.B),
		attribute.Float64("tolerance", cfg.Tolerance),
	)

	solver := fibsearch.NewSolver(
		fibsearch.WithMaxIterations(cfg.MaxIterations),
		fibsearch.WithLogger(logger),
		fibsearch.WithObserver(c.recorder),
	)
	f, err := c.cache.Parse(cfg.Function)
	if err != nil {
		err = &fibsearch.FunctionEvaluationError{Expr: cfg.Function, Parse: true, Err: err}
		c.recorder.Observe(nil, err, 0)
		return c.fail(span, err, theme, opts.quiet)
	}

	start := time.Now()
	res, err := solver.Solve(f, cfg.A, cfg.B, cfg.Tolerance)
	c.recorder.Observe(res, err, time.Since(start))
	if err != nil {
		return c.fail(span, err, theme, opts.quiet)
	}
	span.SetAttributes(attribute.Int("iterations", res.Iterations))

	if opts.quiet {
		fmt.Fprintf(c.stdout, "%.10f %.10f\n", res.Minimizer, res.Minimum)
	} else {
		fmt.Fprintln(c.stdout, viz.Summary(res, theme))
		plot, perr := viz.PlotFunction(export.NewPlotSpec(res, f, viz.DefaultPlotWidth), viz.DefaultPlotHeight)
		if perr != nil {
			logger.Warn("plot skipped", logging.Err(perr))
		} else {
			fmt.Fprintln(c.stdout, plot)
		}
	}

	if opts.save {
		st := c.store(cfg)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(res)
		if err != nil {
			return err
		}
		logger.Info("run saved", logging.String("run", runID), logging.String("dir", st.Dir()))
	}
	if opts.csvPath != "" {
		if err := c.writeFile(opts.csvPath, func(w io.Writer) error { return export.WriteTraceCSV(w, res.Trace) }); err != nil {
			return err
		}
	}
	if opts.jsonPath != "" {
		if err := c.writeFile(opts.jsonPath, func(w io.Writer) error { return export.WriteJSON(w, res) }); err != nil {
			return err
		}
	}
	if opts.svgPath != "" {
		spec := export.NewPlotSpec(res, f, viz.DefaultPlotWidth)
		if err := c.writeFile(opts.svgPath, func(w io.Writer) error { return export.WriteSVG(w, spec) }); err != nil {
			return err
		}
	}
	return nil
}

// fail renders a solver error, marks the span and returns the error already
// shown so main does not print it twice.
func (c *cli) fail(span trace.Span, err error, theme viz.Theme, quiet bool) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if quiet {
		return err
	}
	fmt.Fprintln(c.stderr, viz.Failure(err, theme))
	return &reportedError{err}
}

// writeFile creates path, or writes to stdout when path is "-".
func (c *cli) writeFile(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(c.stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
