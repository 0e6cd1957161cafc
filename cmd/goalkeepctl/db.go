package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/goalkeep/internal/adapters/repository"
	"github.com/okian/goalkeep/pkg/logger"
)

var errNoDatabase = errors.New("no database path: pass --db or set GOALKEEP_DB_PATH")

func (c *cli) dbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the SQLite roster database",
	}
	cmd.AddCommand(c.dbInitCmd())
	return cmd
}

func (c *cli) dbInitCmd() *cobra.Command {
	var empty bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the schema and seed the demo roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if c.cfg.DBPath == "" {
				return errNoDatabase
			}
			store, err := repository.NewSQLiteStore(c.cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := store.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			ctx := cmd.Context()
			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}
			if !empty {
				gks, ops := repository.DemoGoalkeepers(), repository.DemoOpponents()
				if err := store.Import(ctx, gks, ops); err != nil {
					return err
				}
				c.log.Info(ctx, "seeded demo roster",
					logger.String("db_path", c.cfg.DBPath),
					logger.Int("goalkeepers", len(gks)),
					logger.Int("opponents", len(ops)),
				)
			}
			fmt.Fprintf(c.out, "database ready at %s\n", c.cfg.DBPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&empty, "empty", false, "create the schema without demo data")
	return cmd
}
