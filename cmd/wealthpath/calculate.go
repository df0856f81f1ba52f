package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/wealthpath/internal/calculation"
	"github.com/rgehrsitz/wealthpath/internal/config"
	"github.com/rgehrsitz/wealthpath/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (c *cli) calculateCmd() *cobra.Command {
	var (
		run     runFlags
		format  string
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate a retirement plan",
		Long: fmt.Sprintf(`Calculate a retirement plan for the household in input-file.

Formats: %s
Aliases: %s`, strings.Join(output.AvailableFormatterNames(), ", "), strings.Join(output.AvailableFormatAliases(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.Lookup(format)
			if err != nil {
				return err
			}
			opts, err := run.options()
			if err != nil {
				return err
			}
			inputs, err := loadInputs(args[0])
			if err != nil {
				return err
			}

			plan, err := c.newEngine().CalculateRetirementPlan(*inputs, opts)
			if err != nil {
				return err
			}
			c.logger.WithFields(logrus.Fields{
				"seed":          plan.Seed,
				"deterministic": plan.Deterministic,
				"format":        formatter.Name(),
			}).Debug("plan calculated")

			return output.WriteTo(cmd.OutOrStdout(), formatter, &plan, outPath)
		},
	}
	run.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console-lite", "Output format")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := loadInputs(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid (retirement in %d years)\n", args[0], inputs.YearsToRetirement())
			return nil
		},
	}
}

func exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [output-file]",
		Short: "Write an example input file",
		Long:  "Write a complete two-earner example household as YAML to output-file, or to stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := config.CreateExampleInputs()
			if len(args) == 1 {
				if err := config.NewInputParser().SaveInputs(&inputs, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Example inputs written to %s\n", args[0])
				return nil
			}
			data, err := yaml.Marshal(&inputs)
			if err != nil {
				return fmt.Errorf("failed to marshal inputs: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func (c *cli) socialSecurityCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "social-security [input-file]",
		Short: "Compare Social Security claiming ages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := loadInputs(args[0])
			if err != nil {
				return err
			}
			rows := calculation.GenerateSocialSecurityData(*inputs)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "SOCIAL SECURITY CLAIMING OPTIONS")
			fmt.Fprintln(w, strings.Repeat("=", 72))
			fmt.Fprintf(w, "%-10s %14s %14s %14s %16s\n", "Claim Age", "Primary", "Spouse", "Monthly", "Lifetime")
			for _, r := range rows {
				fmt.Fprintf(w, "%-10d %14s %14s %14s %16s\n", r.ClaimingAge,
					output.FormatCurrency(r.PrimaryMonthly), output.FormatCurrency(r.SpouseMonthly),
					output.FormatCurrency(r.MonthlyBenefit), output.FormatDollars(r.LifetimeTotal))
			}
			fmt.Fprintf(w, "\nPlanned claim at %d: %s per month\n",
				calculation.ClampClaimingAge(inputs.SocialSecurityClaimingAge), output.FormatCurrency(calculation.PrimaryMonthlyBenefit(*inputs)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func (c *cli) debtCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "debt [input-file]",
		Short: "Show the debt payoff schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := loadInputs(args[0])
			if err != nil {
				return err
			}
			rows := calculation.GenerateDebtPayoffData(*inputs)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "DEBT PAYOFF SCHEDULE")
			fmt.Fprintln(w, strings.Repeat("=", 84))
			fmt.Fprintf(w, "%-5s %-6s %14s %12s %12s %12s %14s\n", "Age", "Year", "Mortgage", "Student", "Auto", "Card", "Total")
			debtFree := 0
			for _, r := range rows {
				fmt.Fprintf(w, "%-5d %-6d %14s %12s %12s %12s %14s\n", r.Age, r.Year,
					output.FormatDollars(r.Mortgage), output.FormatDollars(r.StudentLoan), output.FormatDollars(r.AutoLoan),
					output.FormatDollars(r.CreditCard), output.FormatDollars(r.TotalDebt))
				if r.TotalDebt.Sign() <= 0 {
					debtFree = r.Age
					break
				}
			}
			if debtFree > 0 {
				fmt.Fprintf(w, "\nDebt free at age %d\n", debtFree)
			} else {
				fmt.Fprintln(w, "\nDebt is not repaid within the projection")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
