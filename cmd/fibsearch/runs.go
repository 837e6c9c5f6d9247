package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/fibsearch/internal/analysis"
	"github.com/san-kum/fibsearch/internal/config"
	"github.com/san-kum/fibsearch/internal/export"
	"github.com/san-kum/fibsearch/internal/fibsearch"
	"github.com/san-kum/fibsearch/internal/tui"
	"github.com/san-kum/fibsearch/internal/viz"
)

func (c *cli) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  c.listRuns,
	}
}

func (c *cli) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run_id]",
		Short: "show the summary of a run (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.showRun,
	}
}

func (c *cli) newPlotCmd() *cobra.Command {
	var svgPath string
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the function of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.plotRun(cmd, args, svgPath)
		},
	}
	cmd.Flags().StringVar(&svgPath, "svg", "", "write an SVG file instead of a terminal plot")
	return cmd
}

func (c *cli) newExportCSVCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the iteration trace of a run as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := c.loadRun(cmd, args)
			if err != nil {
				return err
			}
			return c.writeFile(out, func(w io.Writer) error { return export.WriteTraceCSV(w, res.Trace) })
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file (- for stdout)")
	return cmd
}

func (c *cli) newExportJSONCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := c.loadRun(cmd, args)
			if err != nil {
				return err
			}
			return c.writeFile(out, func(w io.Writer) error { return export.WriteJSON(w, res) })
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file (- for stdout)")
	return cmd
}

func (c *cli) newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [run_id]",
		Short: "print the text report of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := c.loadRun(cmd, args)
			if err != nil {
				return err
			}
			return export.WriteReport(c.stdout, res)
		},
	}
}

func (c *cli) newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "check reduction ratios and compare with golden-section search",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, res, err := c.loadRun(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "run: %s\n", runID)
			fmt.Fprintf(c.stdout, "function: %s\n\n", res.Expr)
			fmt.Fprintln(c.stdout, analysis.Convergence(res))
			return nil
		},
	}
}

func (c *cli) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [run_id]",
		Short: "browse a run interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.baseConfig(cmd, "", "")
			if err != nil {
				return err
			}
			_, res, err := c.loadRun(cmd, args)
			if err != nil {
				return err
			}
			return tui.Run(res, tui.WithTheme(c.themeFor(cfg)))
		},
	}
}

func (c *cli) newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list named problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFUNCTION\tINTERVAL\tTOL\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t[%g, %g]\t%g\t%s\n", name, p.Function, p.A, p.B, p.Tolerance, p.Description)
			}
			return w.Flush()
		},
	}
}

func (c *cli) listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := c.baseConfig(cmd, "", "")
	if err != nil {
		return err
	}
	runs, err := c.store(cfg).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(c.stdout, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFUNCTION\tTIME\tINTERVAL\tTOL\tITER\tMINIMIZER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%g, %g]\t%g\t%d\t%.8f\n",
			run.ID,
			run.Function,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.A, run.B,
			run.Tolerance,
			run.Iterations,
			run.Minimizer,
		)
	}

	return w.Flush()
}

func (c *cli) showRun(cmd *cobra.Command, args []string) error {
	cfg, err := c.baseConfig(cmd, "", "")
	if err != nil {
		return err
	}
	runID, res, err := c.loadRun(cmd, args)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "run: %s\n", runID)
	fmt.Fprintln(c.stdout, viz.Summary(res, c.themeFor(cfg)))
	return nil
}

func (c *cli) plotRun(cmd *cobra.Command, args []string, svgPath string) error {
	_, res, err := c.loadRun(cmd, args)
	if err != nil {
		return err
	}
	f, err := c.cache.Parse(res.Expr)
	if err != nil {
		return &fibsearch.FunctionEvaluationError{Expr: res.Expr, Parse: true, Err: err}
	}
	spec := export.NewPlotSpec(res, f, viz.DefaultPlotWidth)

	if svgPath != "" {
		return c.writeFile(svgPath, func(w io.Writer) error { return export.WriteSVG(w, spec) })
	}
	plot, err := viz.PlotFunction(spec, viz.DefaultPlotHeight)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, plot)
	fmt.Fprintf(c.stdout, "x* = %.8f  f(x*) = %.8f\n", res.Minimizer, res.Minimum)
	return nil
}

// loadRun loads the run named by args[0], or the latest stored run.
func (c *cli) loadRun(cmd *cobra.Command, args []string) (string, *fibsearch.Result, error) {
	cfg, err := c.baseConfig(cmd, "", "")
	if err != nil {
		return "", nil, err
	}
	st := c.store(cfg)

	var runID string
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		runID = args[0]
	} else if runID, err = st.Latest(); err != nil {
		return "", nil, fmt.Errorf("no run given and none stored in %s: %w", st.Dir(), err)
	}

	res, err := st.LoadResult(runID)
	if err != nil {
		return "", nil, err
	}
	return runID, res, nil
}
