package main

import (
	"fmt"

	"github.com/spf13/cobra"

	app "github.com/okian/goalkeep/internal/app"
	"github.com/okian/goalkeep/internal/domain/model"
)

// shotFlags is the shot context shared by rank and timeout.
type shotFlags struct {
	distance float64
	speed    float64
	minute   int
	diff     int
}

func (f *shotFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.distance, "distance", app.DefaultDistanceM, "shot distance in meters (6-12)")
	cmd.Flags().Float64Var(&f.speed, "speed", 0, "shot speed in km/h (70-120, 0 uses the opponent's mean)")
	cmd.Flags().IntVar(&f.minute, "minute", app.DefaultMinute, "match minute (0-60)")
	cmd.Flags().IntVar(&f.diff, "diff", 0, "score difference, positive when leading")
}

func (f *shotFlags) shot(op model.Opponent) model.ShotContext {
	s := app.DefaultShot(op)
	s.DistanceM = f.distance
	s.Minute = f.minute
	s.ScoreDiff = f.diff
	if f.speed > 0 {
		s.SpeedKMH = f.speed
	}
	return s
}

func (c *cli) rankCmd() *cobra.Command {
	var flags shotFlags
	cmd := &cobra.Command{
		Use:   "rank <opponent-id>",
		Short: "Rank the roster before a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd.Context(), func(svc *app.Service) error {
				op, err := c.opponent(cmd, svc, args[0])
				if err != nil {
					return err
				}
				shot := flags.shot(op)
				rep, err := svc.PreGame(cmd.Context(), app.PreGameRequest{OpponentID: op.ID, Shot: &shot})
				if err != nil {
					return err
				}

				fmt.Fprintf(c.out, "%s (rank %d): prefers %s\n", op.Name, op.Ranking, rep.Profile.PreferredZone)
				for _, a := range rep.Profile.Alerts {
					fmt.Fprintf(c.out, "  [%s] %s\n", a.Severity, a.Message)
				}
				c.renderGrid("Attack grid", rep.Profile.AttackGrid)
				c.renderRanking(rep.Ranking)
				if rep.Margin != nil {
					fmt.Fprintf(c.out, "Leader %s ahead of %s by %.1f (%s)\n",
						rep.Margin.LeaderID, rep.Margin.RunnerUpID, rep.Margin.Diff, rep.Margin.Level)
				}
				c.renderZoneLeaders(rep.ZoneLeaders)
				c.degradedNote(rep.Degraded)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *cli) opponent(cmd *cobra.Command, svc *app.Service, id string) (model.Opponent, error) {
	ops, err := svc.Opponents(cmd.Context())
	if err != nil {
		return model.Opponent{}, err
	}
	for _, o := range ops {
		if o.ID == id {
			return o, nil
		}
	}
	return model.Opponent{}, fmt.Errorf("unknown opponent %q", id)
}
