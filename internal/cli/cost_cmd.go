package cli

import (
	"fmt"

	"github.com/alexanderramin/prodtime/internal/app"
	"github.com/alexanderramin/prodtime/internal/cli/formatter"
	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newCostCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Track facility costs and their cost per production minute",
	}

	cmd.AddCommand(
		newCostAddCmd(a),
		newCostUpdateCmd(a),
		newCostListCmd(a),
		newCostShowCmd(a),
		newCostRemoveCmd(a),
		newCostRecalcCmd(a),
		newCostRecalcAllCmd(a),
		newCostInvalidateCmd(a),
		newCostHistoryCmd(a),
		newCostEffectiveCmd(a),
		newCostCashflowCmd(a),
	)

	return cmd
}

// costFlags are the editable fields of a cost record.
type costFlags struct {
	from, to    string
	amount      float64
	paid        bool
	description string
	exclude     []string
}

func (f *costFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.from, "from", "", "First day the cost covers (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "Last day the cost covers, inclusive (YYYY-MM-DD)")
	fs.Float64Var(&f.amount, "amount", 0, "Cost amount")
	fs.BoolVar(&f.paid, "paid", false, "Mark the cost as paid")
	fs.StringVar(&f.description, "desc", "", "Description")
	fs.StringSliceVar(&f.exclude, "exclude-task", nil, "Task ID or code whose sessions do not absorb this cost (repeatable)")
}

func newCostAddCmd(a *App) *cobra.Command {
	var f costFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a cost and calculate its unit cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			from, err := parseDateFlag("from", f.from, a.loc())
			if err != nil {
				return err
			}
			to, err := parseDateFlag("to", f.to, a.loc())
			if err != nil {
				return err
			}
			excluded, err := resolveTaskIDs(ctx, a, f.exclude)
			if err != nil {
				return err
			}

			view, err := a.Costs.Create(ctx, &domain.CostRecord{
				StartDate:       from,
				EndDate:         to,
				Amount:          f.amount,
				IsPaid:          f.paid,
				Description:     f.description,
				ExcludedTaskIDs: excluded,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCostView(view, a.now()))
			return nil
		},
	}

	f.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newCostUpdateCmd(a *App) *cobra.Command {
	var f costFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a cost record and recalculate it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patch, err := costPatchFromFlags(cmd, a, &f)
			if err != nil {
				return err
			}
			view, err := a.Costs.Update(ctx, args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCostView(view, a.now()))
			return nil
		},
	}

	f.register(cmd.Flags())

	return cmd
}

// costPatchFromFlags includes only the flags set on the command line.
func costPatchFromFlags(cmd *cobra.Command, a *App, f *costFlags) (domain.CostPatch, error) {
	var patch domain.CostPatch
	changed := cmd.Flags().Changed

	if changed("from") {
		t, err := parseDateFlag("from", f.from, a.loc())
		if err != nil {
			return patch, err
		}
		patch.StartDate = &t
	}
	if changed("to") {
		t, err := parseDateFlag("to", f.to, a.loc())
		if err != nil {
			return patch, err
		}
		patch.EndDate = &t
	}
	if changed("amount") {
		patch.Amount = &f.amount
	}
	if changed("paid") {
		patch.IsPaid = &f.paid
	}
	if changed("desc") {
		patch.Description = &f.description
	}
	if changed("exclude-task") {
		ids, err := resolveTaskIDs(cmd.Context(), a, f.exclude)
		if err != nil {
			return patch, err
		}
		patch.ExcludedTaskIDs = &ids
	}
	return patch, nil
}

func newCostListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cost records with their latest unit cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := a.Costs.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCostList(views, a.now()))
			return nil
		},
	}
}

func newCostShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a cost record and its latest analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.Costs.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCostView(view, a.now()))
			return nil
		},
	}
}

func newCostRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a cost record and its analyses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Costs.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed cost %s\n", args[0])
			return nil
		},
	}
}

func newCostRecalcCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc ID",
		Short: "Recalculate one cost record against the current sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.Costs.Recalculate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCostView(view, a.now()))
			return nil
		},
	}
}

func newCostRecalcAllCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc-all",
		Short: "Recalculate every cost record",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.Costs.RecalculateAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recalculated %d cost records.\n", n)
			return nil
		},
	}
}

func newCostInvalidateCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate ID",
		Short: "Discard every stored analysis of a cost record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Costs.Invalidate(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Invalidated analyses of cost %s\n", args[0])
			return nil
		},
	}
}

func newCostHistoryCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history ID",
		Short: "List every analysis version of a cost record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := a.Costs.History(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCostHistory(history, a.now()))
			return nil
		},
	}
}

func newCostEffectiveCmd(a *App) *cobra.Command {
	var from, to string
	var exclude []string

	cmd := &cobra.Command{
		Use:   "effective",
		Short: "Compute effective production time over an arbitrary range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start, err := parseInstantFlag("from", from, a.loc())
			if err != nil {
				return err
			}
			end, err := parseInstantFlag("to", to, a.loc())
			if err != nil {
				return err
			}
			excluded, err := resolveTaskIDs(ctx, a, exclude)
			if err != nil {
				return err
			}

			res, err := a.Costs.Effective(ctx, app.EffectiveTimeRequest{From: start, To: end, ExcludedTaskIDs: excluded})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEffectiveTime(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (timestamp or date)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (timestamp or date)")
	cmd.Flags().StringSliceVar(&exclude, "exclude-task", nil, "Task ID or code to leave out (repeatable)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newCostCashflowCmd(a *App) *cobra.Command {
	var rng rangeFlags

	cmd := &cobra.Command{
		Use:   "cashflow",
		Short: "Split costs across calendar months",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := rng.dates(a)
			if err != nil {
				return err
			}
			resp, err := a.Costs.Cashflow(cmd.Context(), app.CashflowRequest{From: from, To: to})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCashflow(resp))
			return nil
		},
	}

	rng.register(cmd.Flags(), "cashflow")

	return cmd
}
