package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	app "github.com/okian/goalkeep/internal/app"
	"github.com/okian/goalkeep/internal/bootstrap"
	"github.com/okian/goalkeep/internal/config"
	"github.com/okian/goalkeep/pkg/logger"
)

// cli carries the state shared by every command once the root pre-run has
// loaded the configuration.
type cli struct {
	cfgFile  string
	dbPath   string
	logLevel string

	cfg *config.Config
	log logger.Logger
	out io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}
	root := &cobra.Command{
		Use:   "goalkeepctl",
		Short: "Goalkeeper selection from the bench",
		Long: `goalkeepctl ranks the goalkeeping roster against an opponent,
gives time-out advice and builds training plans.

Configuration follows the server: defaults, then the YAML file named by
GOALKEEP_CONFIG (or --config), then GOALKEEP_ environment variables.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "YAML config file (overrides GOALKEEP_CONFIG)")
	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "SQLite database path (empty uses the demo roster)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(c.rosterCmd())
	root.AddCommand(c.rankCmd())
	root.AddCommand(c.timeoutCmd())
	root.AddCommand(c.trainCmd())
	root.AddCommand(c.dbCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if c.cfgFile != "" {
		if err := os.Setenv("GOALKEEP_CONFIG", c.cfgFile); err != nil {
			return fmt.Errorf("set config path: %w", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = c.dbPath
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}

	// logs go to stderr so tables stay pipeable
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithWriter(os.Stderr)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logger.Named("goalkeepctl")
	return nil
}

// withService builds a service for the duration of fn.
func (c *cli) withService(ctx context.Context, fn func(*app.Service) error) (err error) {
	svc, closeRepo, err := bootstrap.Service(ctx, c.cfg, c.log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeRepo(); cerr != nil && err == nil {
			err = fmt.Errorf("close repository: %w", cerr)
		}
	}()
	return fn(svc)
}
