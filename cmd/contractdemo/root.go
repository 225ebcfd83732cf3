package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/kolkov/contracts/contract"
	"github.com/kolkov/contracts/internal/scenario"
)

const appName = "contractdemo"

// errMismatch is returned by run when an observed outcome differs from the
// expectation.
var errMismatch = errors.New("scenario outcomes differ from expectations")

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Run design-by-contract demonstration scenarios",
		Long: `contractdemo runs small guarded types through calls that are expected
to pass or to raise a specific contract violation:

- ctor, dtor, mfun: preconditions and postconditions per contract kind
- derived, derived-method: base and derived class invariants
- loop: loop invariants checked once per iteration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), logLevel))
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newListCmd(), newRunCmd(), newVersionCmd())
	return cmd
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl := slog.LevelWarn
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scenarios",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, s := range scenario.Catalog() {
				fmt.Fprintf(out, "%-16s %2d steps  %s\n", s.Name, len(s.Steps()), s.Description)
			}
		},
	}
}

type runOptions struct {
	noColor bool
	metrics bool
	reports bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [name...]",
		Short: "Run scenarios (all if none named)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				prev := color.NoColor
				color.NoColor = true
				defer func() { color.NoColor = prev }()
			}
			return run(cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Print violation counters after the run")
	cmd.Flags().BoolVar(&opts.reports, "reports", true, "Print the report of each violation")
	return cmd
}

func selectScenarios(names []string) ([]scenario.Scenario, error) {
	if len(names) == 0 {
		return scenario.Catalog(), nil
	}
	out := make([]scenario.Scenario, 0, len(names))
	for _, name := range names {
		s, ok := scenario.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q (see %s list)", name, appName)
		}
		out = append(out, s)
	}
	return out, nil
}

func run(out io.Writer, names []string, opts runOptions) error {
	selected, err := selectScenarios(names)
	if err != nil {
		return err
	}

	promReg := prometheus.NewRegistry()
	counted, err := contract.Instrument(contract.Raise{}, promReg)
	if err != nil {
		return fmt.Errorf("instrument handler: %w", err)
	}
	reg := contract.NewRegistry(counted)
	reg.CaptureStack = false

	title := color.New(color.Bold)
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed, color.Bold)

	var steps, mismatches int
	for _, s := range selected {
		slog.Debug("running scenario", "name", s.Name)
		_, _ = title.Fprintf(out, "== %s: %s\n", s.Name, s.Description)

		for _, res := range s.Run(reg) {
			steps++
			if res.OK() {
				_, _ = pass.Fprintln(out, res.String())
			} else {
				mismatches++
				_, _ = fail.Fprintln(out, res.String())
				slog.Warn("unexpected outcome", "scenario", s.Name, "step", res.Step, "want", res.Want, "got", res.Got)
			}
			if opts.reports && res.Report != nil {
				res.Report.Format(out)
			}
			if res.Got == scenario.Panic {
				fmt.Fprintf(out, "  panic: %v\n", res.Value)
			}
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "%d scenarios, %d steps, %d mismatches\n", len(selected), steps, mismatches)

	if opts.metrics {
		if err := writeMetrics(out, promReg); err != nil {
			return err
		}
	}

	if mismatches > 0 {
		return errMismatch
	}
	return nil
}

func writeMetrics(out io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	fmt.Fprintln(out)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	var require string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := contract.GetInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (handler %s, stack %t)\n",
				appName, info.Version, info.Handler, info.CaptureStack)

			if require != "" && !contract.Compatible(require) {
				return fmt.Errorf("runtime %s does not satisfy %s", info.Version, require)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&require, "require", "", "Fail unless the runtime is compatible with this version")
	return cmd
}
