package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"backend-greentransit/internal/config"
	"backend-greentransit/internal/db"
	"backend-greentransit/internal/ledger"
	"backend-greentransit/internal/logging"
	"backend-greentransit/internal/metrics"
	"backend-greentransit/internal/store"
	"backend-greentransit/internal/stream"

	"github.com/spf13/cobra"
)

// Opener builds a ledger against the configured store. The returned func
// releases connections.
type Opener func(ctx context.Context, cfg config.Config) (*ledger.Ledger, func(), error)

type options struct {
	cfg    config.Config
	open   Opener
	asJSON bool
}

// NewRootCmd builds the greenctl command tree.
func NewRootCmd(cfg config.Config, open Opener) *cobra.Command {
	if open == nil {
		open = OpenConfigured
	}
	opts := &options{cfg: cfg, open: open}

	cmd := &cobra.Command{
		Use:           "greenctl",
		Short:         "Record green trips and inspect the trip ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Print raw JSON instead of a summary")

	cmd.AddCommand(
		newRecordCmd(opts),
		newProfileCmd(opts),
		newTasksCmd(opts),
		newResetTasksCmd(opts),
		newStatsCmd(opts),
		newVerifyStreakCmd(opts),
		newRecommendCmd(opts),
		newTokenCmd(opts),
	)
	return cmd
}

// OpenConfigured connects to Postgres and Redis when configured and falls
// back to an in-memory store otherwise. Trips recorded through it are
// announced on the Redis change feed.
func OpenConfigured(ctx context.Context, cfg config.Config) (*ledger.Ledger, func(), error) {
	log := logging.New(cfg.Debug)

	pg, err := db.ConnectPostgres(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	rdb := db.ConnectRedis(cfg)

	st, err := store.Open(ctx, cfg, pg, rdb, log.Named("store"))
	if err != nil {
		if pg != nil {
			pg.Close()
		}
		return nil, nil, err
	}
	hub := stream.NewHub(rdb, log.Named("stream"))

	l := ledger.New(ledger.Options{
		Store:        st,
		Notifier:     hub,
		Metrics:      metrics.New(),
		Logger:       log.Named("ledger"),
		Location:     cfg.Location(),
		HistoryLimit: cfg.HistoryLimit,
	})
	closeFn := func() {
		hub.Close()
		if pg != nil {
			pg.Close()
		}
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = log.Sync()
	}
	return l, closeFn, nil
}

func (o *options) withLedger(cmd *cobra.Command, fn func(*ledger.Ledger) error) error {
	l, closeFn, err := o.open(cmd.Context(), o.cfg)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}
	return fn(l)
}

func (o *options) printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
