package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	app "github.com/okian/goalkeep/internal/app"
)

func (c *cli) rosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List goalkeepers and opponents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd.Context(), func(svc *app.Service) error {
				gks, err := svc.Goalkeepers(cmd.Context())
				if err != nil {
					return err
				}
				ops, err := svc.Opponents(cmd.Context())
				if err != nil {
					return err
				}

				t := c.table("Goalkeepers")
				t.AppendHeader(table.Row{"ID", "Name", "Height", "Span", "Side", "Lateral m/s"})
				for _, g := range gks {
					t.AppendRow(table.Row{g.ID, g.Name, g.HeightCM, g.SpanCM, g.Position, fmt.Sprintf("%.1f", g.LateralSpeedM)})
				}
				t.Render()

				t = c.table("Opponents")
				t.AppendHeader(table.Row{"Rank", "ID", "Name", "Speed km/h", "High %", "Mid %", "Low %"})
				for _, o := range ops {
					t.AppendRow(table.Row{o.Ranking, o.ID, o.Name, fmt.Sprintf("%.0f", o.ShotSpeedKMH),
						fmt.Sprintf("%.0f", o.HighPct), fmt.Sprintf("%.0f", o.MidPct), fmt.Sprintf("%.0f", o.LowPct)})
				}
				t.Render()
				return nil
			})
		},
	}
	return cmd
}
