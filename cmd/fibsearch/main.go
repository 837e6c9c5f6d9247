package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/fibsearch/internal/config"
	"github.com/san-kum/fibsearch/internal/expr"
	"github.com/san-kum/fibsearch/internal/logging"
	"github.com/san-kum/fibsearch/internal/metrics"
	"github.com/san-kum/fibsearch/internal/storage"
	"github.com/san-kum/fibsearch/internal/viz"
)

const exprCacheSize = 64

// cli holds the state shared by every command of one invocation.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	dataDir     string
	logLevel    string
	theme       string
	metricsPath string

	recorder *metrics.Recorder
	cache    *expr.Cache
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{
		stdout:   stdout,
		stderr:   stderr,
		recorder: metrics.NewRecorder(),
		cache:    expr.NewCache(exprCacheSize),
	}
}

func main() {
	c := newCLI(os.Stdout, os.Stderr)
	if err := c.execute(os.Args[1:]); err != nil {
		var shown *reportedError
		if !errors.As(err, &shown) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

// execute runs one command line. Metrics, when requested, are written even
// if the command failed.
func (c *cli) execute(args []string) error {
	root := c.newRootCmd()
	root.SetArgs(args)
	err := root.Execute()
	if c.metricsPath != "" {
		if merr := c.writeMetrics(); merr != nil && err == nil {
			err = merr
		}
	}
	return err
}

func (c *cli) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fibsearch",
		Short:         "fibonacci search for the minimum of a unimodal function",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetOut(c.stdout)
	rootCmd.SetErr(c.stderr)

	rootCmd.PersistentFlags().StringVar(&c.dataDir, "data", config.DefaultDataDir, "run directory")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&c.theme, "theme", config.DefaultTheme, "color theme")
	rootCmd.PersistentFlags().StringVar(&c.metricsPath, "metrics", "", "write prometheus metrics to a file on exit (- for stdout)")

	rootCmd.AddCommand(
		c.newSolveCmd(),
		c.newSweepCmd(),
		c.newListCmd(),
		c.newShowCmd(),
		c.newPlotCmd(),
		c.newExportCSVCmd(),
		c.newExportJSONCmd(),
		c.newReportCmd(),
		c.newAnalyzeCmd(),
		c.newTUICmd(),
		c.newPresetsCmd(),
	)
	return rootCmd
}

// baseConfig resolves defaults, the optional preset and config file, the
// environment and the persistent flags, in that order of precedence.
func (c *cli) baseConfig(cmd *cobra.Command, preset, file string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, &configError{fmt.Errorf("unknown preset %q (see 'fibsearch presets')", preset)}
		}
		p.Apply(cfg)
	}
	if file != "" {
		loaded, err := config.Load(file, cfg)
		if err != nil {
			return nil, &configError{err}
		}
		cfg = loaded
	}
	config.ApplyEnv(cfg)

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = c.dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("theme") {
		cfg.Theme = c.theme
	}
	return cfg, nil
}

func (c *cli) logger(cfg *config.Config, component string) logging.Logger {
	return logging.NewConsoleLogger(c.stderr, component, cfg.LogLevel)
}

func (c *cli) store(cfg *config.Config) *storage.Store {
	return storage.New(cfg.DataDir)
}

func (c *cli) themeFor(cfg *config.Config) viz.Theme {
	return viz.GetTheme(cfg.Theme)
}

func (c *cli) writeMetrics() error {
	if c.metricsPath == "-" {
		return c.recorder.WriteText(c.stdout)
	}
	f, err := os.Create(c.metricsPath)
	if err != nil {
		return err
	}
	if err := c.recorder.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
