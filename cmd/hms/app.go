package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/domain/supply"
	"github.com/hms/hms/internal/platform/logging"
	"github.com/hms/hms/internal/platform/metrics"
	"github.com/hms/hms/internal/snapshot"
	"github.com/hms/hms/internal/store"
)

// app is one loaded store with the services built on it.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	metrics *metrics.Metrics
	store   *store.Store

	identity   *identity.Service
	scheduling *scheduling.Service
	supply     *supply.Service
	billing    *billing.Service
}

// openApp reads configuration, connects the snapshot provider and loads
// every collection. Collections that cannot be read start empty.
func openApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Dev:    cfg.IsDev(),
		Out:    logOut,
	})

	provider, err := snapshot.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}

	m := metrics.New()
	st := store.New(provider, store.WithLogger(logger), store.WithMetrics(m))
	res := st.Load(ctx)
	logger.Debug().Bool("ok", res.OK()).Interface("counts", st.Counts()).Msg("store loaded")

	return &app{
		cfg:        cfg,
		logger:     logger,
		metrics:    m,
		store:      st,
		identity:   identity.NewService(st, st, loc, logger),
		scheduling: scheduling.NewService(st, loc, logger),
		supply:     supply.NewService(st, logger),
		billing:    billing.NewService(st, cfg.BillDir, logger),
	}, nil
}

// close saves the store and releases the provider.
func (a *app) close(ctx context.Context) store.Result {
	res := a.store.Save(ctx)
	if err := a.store.Provider().Close(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to close storage")
	}
	return res
}

type action func(ctx context.Context, a *app, out io.Writer) error

// run loads the store, performs act and saves on the way out, the way a
// session is closed.
func run(cmd *cobra.Command, act action) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	actErr := act(ctx, a, cmd.OutOrStdout())
	if res := a.close(ctx); !res.OK() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: some collections were not saved: %v\n", res.Err())
	}
	return actErr
}
