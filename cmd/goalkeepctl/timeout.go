package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	app "github.com/okian/goalkeep/internal/app"
)

func (c *cli) timeoutCmd() *cobra.Command {
	var (
		flags   shotFlags
		current string
		penalty float64
	)
	cmd := &cobra.Command{
		Use:   "timeout <opponent-id>",
		Short: "Decide on a substitution during a time-out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd.Context(), func(svc *app.Service) error {
				op, err := c.opponent(cmd, svc, args[0])
				if err != nil {
					return err
				}
				rep, err := svc.Timeout(cmd.Context(), app.TimeoutRequest{
					OpponentID:      op.ID,
					CurrentID:       current,
					Shot:            flags.shot(op),
					PenaltySpeedKMH: penalty,
				})
				if err != nil {
					return err
				}

				c.renderRanking(rep.Ranking)
				if d := rep.Ranking.Decision; d != nil {
					fmt.Fprintf(c.out, "Decision: %s (%+.1f) %s\n", d.Tier, d.Diff, d.Reason)
				}

				t := c.table(fmt.Sprintf("Advice for %s", rep.Keeper.GoalkeeperID))
				t.AppendHeader(table.Row{"Priority", "Category", "Directive", "Why"})
				for _, r := range rep.Recommendations {
					t.AppendRow(table.Row{r.Priority, r.Category, r.Title, r.Rationale})
				}
				t.Render()

				if rep.Penalty != nil {
					fmt.Fprintln(c.out, "Penalty ranking:")
					c.renderRanking(*rep.Penalty)
				}
				c.degradedNote(rep.Degraded)
				return nil
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&current, "current", "", "goalkeeper currently on court")
	cmd.Flags().Float64Var(&penalty, "penalty-speed", 0, "also rank for a penalty at this speed in km/h")
	return cmd
}
