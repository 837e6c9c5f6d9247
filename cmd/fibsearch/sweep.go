package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/san-kum/fibsearch/internal/config"
	"github.com/san-kum/fibsearch/internal/fibsearch"
	"github.com/san-kum/fibsearch/internal/logging"
	"github.com/san-kum/fibsearch/internal/storage"
	"github.com/san-kum/fibsearch/internal/sweep"
)

const spinnerInterval = 100 * time.Millisecond

type sweepOptions struct {
	functions  []string
	a, b       float64
	tolerances []float64
	workers    int

	preset     string
	configFile string
	save       bool
}

func (c *cli) newSweepCmd() *cobra.Command {
	opts := &sweepOptions{}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "solve functions over a range of tolerances in parallel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSweep(cmd, opts)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.functions, "function", "f", nil, "expression in x (repeatable)")
	cmd.Flags().Float64Var(&opts.a, "a", config.DefaultA, "left bound")
	cmd.Flags().Float64Var(&opts.b, "b", config.DefaultB, "right bound")
	cmd.Flags().Float64SliceVar(&opts.tolerances, "tol", nil, "tolerances to sweep (comma separated)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", config.DefaultWorkers, "concurrent searches")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "use a named problem (see 'fibsearch presets')")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file path (yaml)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "store every successful run")
	return cmd
}

func (o *sweepOptions) resolve(c *cli, cmd *cobra.Command) (*config.Config, []string, error) {
	cfg, err := c.baseConfig(cmd, o.preset, o.configFile)
	if err != nil {
		return nil, nil, err
	}
	flags := cmd.Flags()
	functions := []string{cfg.Function}
	if flags.Changed("function") {
		functions = o.functions
		cfg.Function = o.functions[0]
	}
	if flags.Changed("a") {
		cfg.A = o.a
	}
	if flags.Changed("b") {
		cfg.B = o.b
	}
	if flags.Changed("tol") {
		cfg.Sweep.Tolerances = o.tolerances
	}
	if flags.Changed("workers") {
		cfg.Sweep.Workers = o.workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, &configError{err}
	}
	if len(cfg.Sweep.Tolerances) == 0 {
		return nil, nil, &configError{fmt.Errorf("sweep needs at least one tolerance")}
	}
	return cfg, functions, nil
}

func (c *cli) runSweep(cmd *cobra.Command, opts *sweepOptions) error {
	cfg, functions, err := opts.resolve(c, cmd)
	if err != nil {
		return err
	}
	logger := c.logger(cfg, "sweep")

	jobs := sweep.Grid(functions, []sweep.Interval{{A: cfg.A, B: cfg.B}}, cfg.Sweep.Tolerances)

	s := spinner.New(spinner.CharSets[11], spinnerInterval, spinner.WithWriter(c.stderr))
	s.Suffix = fmt.Sprintf(" solving 0/%d", len(jobs))
	s.Start()

	runner := &sweep.Runner{
		Solver:   fibsearch.NewSolver(fibsearch.WithMaxIterations(cfg.MaxIterations), fibsearch.WithObserver(c.recorder)),
		Cache:    c.cache,
		Workers:  cfg.Sweep.Workers,
		Logger:   logger,
		Recorder: c.recorder,
		Progress: func(done, total int) {
			s.Lock()
			s.Suffix = fmt.Sprintf(" solving %d/%d", done, total)
			s.Unlock()
		},
	}
	outcomes, err := runner.Run(cmd.Context(), jobs)
	s.Stop()
	if err != nil {
		return err
	}

	var st *storage.Store
	if opts.save {
		st = c.store(cfg)
		if err := st.Init(); err != nil {
			return err
		}
	}

	best := sweep.Best(outcomes)
	w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FUNCTION\tTOL\tN\tEVALS\tMINIMIZER\tMINIMUM\tWIDTH\tSTATUS")
	for i, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(w, "%s\t%g\t-\t-\t-\t-\t-\t%v\n", o.Job.Function, o.Job.Tolerance, o.Err)
			continue
		}
		status := "ok"
		if st != nil {
			runID, err := st.Save(o.Result)
			if err != nil {
				return err
			}
			status = runID
		}
		if i == best {
			status += " *"
		}
		res := o.Result
		fmt.Fprintf(w, "%s\t%g\t%d\t%d\t%.10f\t%.10f\t%.3e\t%s\n",
			o.Job.Function, o.Job.Tolerance, res.Iterations, res.Evaluations,
			res.Minimizer, res.Minimum, res.FinalWidth(), status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failed := sweep.Failed(outcomes); failed > 0 {
		logger.Warn("some searches failed", logging.Int("failed", failed), logging.Int("jobs", len(jobs)))
	}
	return nil
}
