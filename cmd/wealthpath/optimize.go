package main

import (
	"fmt"

	"github.com/rgehrsitz/wealthpath/internal/breakeven"
	"github.com/rgehrsitz/wealthpath/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (c *cli) optimizeCmd() *cobra.Command {
	var (
		run          runFlags
		target       string
		goal         string
		targetIncome float64
		participant  string
		asJSON       bool
	)
	cmd := &cobra.Command{
		Use:   "optimize [input-file]",
		Short: "Search for the withdrawal rate, retirement age or claiming age that best meets a goal",
		Long: `Search one plan input at a time for the value that best meets a goal.

Targets: withdrawal_rate, retirement_age, ss_age, all
Goals:   match_income, maximize_income, maximize_longevity, maximize_score

Every candidate replays the same market path, so differences come from the
searched input alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := breakeven.ParseTarget(target)
			if !ok {
				return fmt.Errorf("unknown target %q (valid: withdrawal_rate, retirement_age, ss_age, all)", target)
			}
			g, ok := breakeven.ParseGoal(goal)
			if !ok {
				return fmt.Errorf("unknown goal %q (valid: match_income, maximize_income, maximize_longevity, maximize_score)", goal)
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
			solver := breakeven.NewDefaultSolver(engine)

			req := breakeven.OptimizationRequest{
				Base:          inputs,
				Target:        t,
				Goal:          g,
				Constraints:   breakeven.Constraints{Participant: transform.Participant(participant)},
				Seed:          opts.Seed,
				Deterministic: opts.Deterministic,
			}
			if cmd.Flags().Changed("target-income") {
				ti := decimal.NewFromFloat(targetIncome)
				req.Constraints.TargetIncome = &ti
			}

			w := cmd.OutOrStdout()
			jf := &breakeven.JSONFormatter{Pretty: true}
			tf := &breakeven.TableFormatter{}

			if t == breakeven.OptimizeAll {
				result, err := solver.OptimizeAllTargets(cmd.Context(), req, g)
				if err != nil {
					return fmt.Errorf("optimization failed: %w", err)
				}
				if asJSON {
					out, err := jf.FormatMultiDimensional(result)
					if err != nil {
						return err
					}
					fmt.Fprintln(w, out)
					return nil
				}
				fmt.Fprint(w, tf.FormatMultiDimensional(result))
				return nil
			}

			result, err := solver.Optimize(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("optimization failed: %w", err)
			}
			if asJSON {
				out, err := jf.Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, out)
				return nil
			}
			fmt.Fprint(w, tf.Format(result))
			return nil
		},
	}
	run.register(cmd)
	cmd.Flags().StringVar(&target, "target", string(breakeven.OptimizeWithdrawalRate), "Input to search")
	cmd.Flags().StringVar(&goal, "goal", string(breakeven.GoalMaximizeIncome), "Outcome to optimize")
	cmd.Flags().Float64Var(&targetIncome, "target-income", 0, "Annual income for match_income (defaults to desired retirement spending)")
	cmd.Flags().StringVar(&participant, "participant", string(transform.Primary), "Earner whose claiming age is searched (primary, spouse)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}
