package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/wealthpath/internal/compare"
	"github.com/rgehrsitz/wealthpath/internal/config"
	"github.com/rgehrsitz/wealthpath/internal/output"
	"github.com/rgehrsitz/wealthpath/internal/transform"
	"github.com/spf13/cobra"
)

func (c *cli) compareCmd() *cobra.Command {
	var (
		run           runFlags
		base          string
		with          string
		transforms    []string
		format        string
		listTemplates bool
	)
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare what-if alternatives against the base plan",
		Long: `Compare a base retirement plan against alternatives built from templates or
transforms. Every alternative replays the base plan's market path.

Examples:
  wealthpath compare household.yaml --with postpone_2yr,delay_ss_70
  wealthpath compare household.yaml --transform "adjust_contribution:account=401k,amount=5000"
  wealthpath compare household.yaml --with save_more --format csv
  wealthpath compare --list-templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if listTemplates {
				fmt.Fprint(w, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				fmt.Fprintf(w, "\nTransforms: %s\n", strings.Join(transform.NewTransformRegistry().List(), ", "))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
			}

			templates := transform.ParseTemplateList(with)
			if len(templates) == 0 && len(transforms) == 0 {
				return fmt.Errorf("--with or --transform is required to specify alternatives")
			}
			opts, err := run.options()
			if err != nil {
				return err
			}
			inputs, err := loadInputs(args[0])
			if err != nil {
				return err
			}

			engine := c.newEngine()
			engine.DebtModel = opts.DebtModel
			engine.Strategy = opts.Strategy
			set, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), inputs, compare.CompareOptions{
				BaseScenarioName: base,
				Templates:        templates,
				Transforms:       transforms,
				Seed:             opts.Seed,
				Deterministic:    opts.Deterministic,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			set.ConfigPath = args[0]

			switch strings.ToLower(format) {
			case "csv":
				out, err := (&compare.CSVFormatter{}).Format(set)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(w, out)
			case "json":
				out, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprint(w, out)
			case "compact":
				fmt.Fprintln(w, (&compare.TableFormatter{}).FormatCompact(set))
			case "table", "console", "":
				fmt.Fprint(w, (&compare.TableFormatter{}).Format(set))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
			}
			return nil
		},
	}
	run.register(cmd)
	cmd.Flags().StringVar(&base, "base", "base", "Label for the unmodified plan")
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArrayVar(&transforms, "transform", nil, "Transform spec name:key=value,... (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List all available templates and transforms")
	return cmd
}

// batchSummary is one household row of the batch report.
type batchSummary struct {
	Name                string `json:"name"`
	Seed                int64  `json:"seed,omitempty"`
	SavingsAtRetirement string `json:"savingsAtRetirement,omitempty"`
	AnnualIncome        string `json:"annualIncome,omitempty"`
	SustainabilityScore int    `json:"sustainabilityScore,omitempty"`
	PortfolioLongevity  int    `json:"portfolioLongevity,omitempty"`
	Error               string `json:"error,omitempty"`
}

func (c *cli) batchCmd() *cobra.Command {
	var (
		run    runFlags
		asJSON bool
		outDir string
		format string
	)
	cmd := &cobra.Command{
		Use:   "batch [households-file]",
		Short: "Calculate plans for every household in a batch file",
		Long: `Calculate plans for every household listed under "households:" in parallel.
With --out-dir each plan is also written in --format to <out-dir>/<name>.<ext>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := run.options()
			if err != nil {
				return err
			}
			var formatter output.Formatter
			if outDir != "" {
				if formatter, err = output.Lookup(format); err != nil {
					return err
				}
			}
			batch, err := config.NewInputParser().LoadBatchFile(args[0])
			if err != nil {
				return err
			}

			results := c.newEngine().CalculateBatch(batch.Households, opts)
			summaries := make([]batchSummary, 0, len(results))
			failed := 0
			for _, r := range results {
				s := batchSummary{Name: r.Name}
				if r.Err != nil {
					failed++
					s.Error = r.Err.Error()
					c.logger.WithField("household", r.Name).Warnf("calculation failed: %v", r.Err)
					summaries = append(summaries, s)
					continue
				}
				s.Seed = r.Plan.Seed
				s.SavingsAtRetirement = output.FormatDollars(r.Plan.TotalRetirementSavings)
				s.AnnualIncome = output.FormatDollars(r.Plan.EstimatedAnnualRetirementIncome)
				s.SustainabilityScore = r.Plan.SustainabilityScore
				s.PortfolioLongevity = r.Plan.PortfolioLongevity
				summaries = append(summaries, s)

				if formatter != nil {
					plan := r.Plan
					path := filepath.Join(outDir, r.Name+"."+output.Extension(formatter.Name()))
					if err := output.WriteTo(cmd.OutOrStdout(), formatter, &plan, path); err != nil {
						return err
					}
				}
			}

			w := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(w, summaries); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(w, "%-20s %-20s %16s %14s %7s %9s\n", "Household", "Seed", "Savings", "Income", "Score", "Lasts To")
				for _, s := range summaries {
					if s.Error != "" {
						fmt.Fprintf(w, "%-20s ERROR: %s\n", s.Name, s.Error)
						continue
					}
					fmt.Fprintf(w, "%-20s %-20d %16s %14s %7d %9d\n", s.Name, s.Seed, s.SavingsAtRetirement, s.AnnualIncome, s.SustainabilityScore, s.PortfolioLongevity)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d households failed", failed, len(results))
			}
			return nil
		},
	}
	run.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for one report per household")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Report format for --out-dir")
	return cmd
}
