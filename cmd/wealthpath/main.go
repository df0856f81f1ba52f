package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/rgehrsitz/wealthpath/internal/calculation"
	"github.com/rgehrsitz/wealthpath/internal/config"
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/rgehrsitz/wealthpath/internal/sequencing"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cli holds the persistent flags shared by every command.
type cli struct {
	debug     bool
	logFormat string
	logger    *logrus.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "wealthpath",
		Short: "Household retirement projection calculator",
		Long: `Project a household's net worth, income sources and debt from today through
life expectancy, and compare what-if alternatives against the base plan.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), c.logFormat, c.debug)
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "Enable debug logging of the yearly projection")
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		c.calculateCmd(),
		c.validateCmd(),
		exampleCmd(),
		c.socialSecurityCmd(),
		c.debtCmd(),
		c.compareCmd(),
		c.batchCmd(),
		c.optimizeCmd(),
		c.serveCmd(),
		c.tuiCmd(),
		versionCmd(),
	)
	return root
}

// newLogger builds the logrus logger used by the engine and the server.
func newLogger(w io.Writer, format string, debugMode bool) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	switch strings.ToLower(format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q (valid: text, json)", format)
	}
	logger.SetLevel(logrus.InfoLevel)
	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger, nil
}

// newEngine returns an engine logging through the CLI logger. Per-year state
// is only logged with --debug.
func (c *cli) newEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(c.logger.WithField("component", "engine"))
	engine.Debug = c.debug
	return engine
}

func loadInputs(path string) (*domain.CalculatorInputs, error) {
	inputs, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return inputs, nil
}

// runFlags are the engine options every calculating command accepts.
type runFlags struct {
	seed            int64
	deterministic   bool
	debtModel       string
	withdrawal      string
	withdrawalOrder []string
}

func (rf *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&rf.seed, "seed", 0, "Random seed to replay a market path (0 picks a new one)")
	cmd.Flags().BoolVar(&rf.deterministic, "deterministic", false, "Disable market volatility and cycles")
	cmd.Flags().StringVar(&rf.debtModel, "debt-model", string(calculation.DebtModelSchedule), "Other-debt model (schedule, decay)")
	cmd.Flags().StringVar(&rf.withdrawal, "withdrawal-strategy", "proportional", "Withdrawal sequencing in retirement (proportional, standard, custom)")
	cmd.Flags().StringSliceVar(&rf.withdrawalOrder, "withdrawal-order", nil, "Account order for the custom strategy (taxable, traditional, roth)")
}

func (rf *runFlags) options() (calculation.Options, error) {
	opts := calculation.Options{Seed: rf.seed, Deterministic: rf.deterministic}
	switch calculation.DebtModel(rf.debtModel) {
	case calculation.DebtModelSchedule, calculation.DebtModelDecay:
		opts.DebtModel = calculation.DebtModel(rf.debtModel)
	default:
		return opts, fmt.Errorf("unknown debt model %q (valid: schedule, decay)", rf.debtModel)
	}
	if rf.withdrawal != "" {
		if !slices.Contains(sequencing.StrategyNames, rf.withdrawal) {
			return opts, fmt.Errorf("unknown withdrawal strategy %q (valid: %s)", rf.withdrawal, strings.Join(sequencing.StrategyNames, ", "))
		}
		opts.Strategy = sequencing.CreateStrategy(rf.withdrawal, rf.withdrawalOrder)
	}
	return opts, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wealthpath %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
