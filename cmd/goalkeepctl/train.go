package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	app "github.com/okian/goalkeep/internal/app"
)

func (c *cli) trainCmd() *cobra.Command {
	var (
		mode     string
		distance float64
		speed    float64
	)
	cmd := &cobra.Command{
		Use:   "train <goalkeeper-id> <opponent-id>",
		Short: "Build a weekly training plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd.Context(), func(svc *app.Service) error {
				rep, err := svc.Training(cmd.Context(), app.TrainingRequest{
					GoalkeeperID: args[0],
					OpponentID:   args[1],
					Mode:         mode,
					DistanceM:    distance,
					SpeedKMH:     speed,
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(c.out, "%s vs %s (%s)\n", rep.Goalkeeper.Name, rep.Opponent.Name, rep.Mode)
				c.renderGrid("Save probability", rep.Grid)

				t := c.table("Focus zones")
				t.AppendHeader(table.Row{"Zone", "Save %", "Urgency", "Minutes", "Drills"})
				for _, f := range rep.Focus {
					drills := make([]string, 0, len(f.Exercise.Drills))
					for _, d := range f.Exercise.Drills {
						drills = append(drills, d.Name)
					}
					t.AppendRow(table.Row{f.Zone, fmt.Sprintf("%.1f", f.Probability), f.Urgency, f.Minutes, strings.Join(drills, ", ")})
				}
				t.Render()

				t = c.table("Week")
				t.AppendHeader(table.Row{"Day", "Kind", "Focus", "Minutes"})
				for _, s := range rep.Plan.Sessions {
					t.AppendRow(table.Row{s.Day, s.Kind, s.Focus, s.Minutes})
				}
				t.AppendFooter(table.Row{"", "", "Total", rep.Plan.TotalMinutes})
				t.Render()
				fmt.Fprintf(c.out, "Expected improvement: +%.1f pts\n", rep.Plan.ExpectedImprovement)
				c.degradedNote(rep.Degraded)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "match_prep", "ranking mode (match_prep, development)")
	cmd.Flags().Float64Var(&distance, "distance", 0, "shot distance in meters (0 uses the default)")
	cmd.Flags().Float64Var(&speed, "speed", 0, "shot speed in km/h (0 uses the opponent's mean)")
	return cmd
}
