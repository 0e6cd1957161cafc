package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/okian/goalkeep/internal/domain/ranking"
	"github.com/okian/goalkeep/internal/domain/zone"
)

func (c *cli) table(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	return t
}

// renderGrid prints a 3x3 grid as seen from the goalkeeper's front.
func (c *cli) renderGrid(title string, g zone.Grid) {
	t := c.table(title)
	t.AppendHeader(table.Row{"", zone.Left, zone.Center, zone.Right})
	for r, row := range g.Rows() {
		t.AppendRow(table.Row{zone.Row(r),
			fmt.Sprintf("%.1f", row[0]), fmt.Sprintf("%.1f", row[1]), fmt.Sprintf("%.1f", row[2])})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

func (c *cli) renderRanking(r ranking.Ranking) {
	t := c.table("Ranking")
	t.AppendHeader(table.Row{"#", "ID", "Name", "Score", "Band", "Weakest", ""})
	for _, e := range r.Entries {
		note := ""
		if e.Degraded {
			note = "degraded"
		}
		weak := e.Grid.ArgMin()
		t.AppendRow(table.Row{e.Rank, e.Goalkeeper.ID, e.Goalkeeper.Name,
			fmt.Sprintf("%.1f", e.Score), e.Band, fmt.Sprintf("%s %.1f", weak.Short(), e.Grid[weak]), note})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 4, Align: text.AlignRight}})
	t.Render()
}

func (c *cli) renderZoneLeaders(leaders []ranking.ZoneLeader) {
	if len(leaders) == 0 {
		return
	}
	t := c.table("Zone coverage")
	t.AppendHeader(table.Row{"Zone", "Best", "Save %", "Worst", "Save %", "Spread"})
	for _, l := range leaders {
		t.AppendRow(table.Row{l.Zone.Short(), l.BestID, fmt.Sprintf("%.1f", l.BestProb),
			l.WorstID, fmt.Sprintf("%.1f", l.WorstProb), fmt.Sprintf("%.1f", l.Spread)})
	}
	t.Render()
}

func (c *cli) degradedNote(degraded bool) {
	if degraded {
		fmt.Fprintln(c.out, "note: some zone readings fell back to neutral values")
	}
}
