package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/navigate"
	"github.com/sells-group/leadgen-cli/internal/pipeline"
	"github.com/sells-group/leadgen-cli/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	var (
		s   store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "leadgen.db"
		}
		s, err = store.NewSQLite(dsn)
	case "postgres":
		s, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func initNavigator() *navigate.Client {
	opts := navigate.DefaultOptions()
	if cfg.Navigate.UserAgent != "" {
		opts.UserAgent = cfg.Navigate.UserAgent
	}
	if cfg.Navigate.TimeoutSecs > 0 {
		opts.Timeout = time.Duration(cfg.Navigate.TimeoutSecs) * time.Second
	}
	if cfg.Navigate.RatePerSec > 0 {
		opts.RatePerSec = cfg.Navigate.RatePerSec
	}
	return navigate.NewClient(opts)
}

func runConfig() pipeline.Config {
	return pipeline.Config{
		Industry:       cfg.Run.Industry,
		Location:       cfg.Run.Location,
		MaxResults:     cfg.Run.MaxResults,
		IndustryFilter: cfg.Run.IndustryFilter,
		Concurrency:    cfg.Run.Concurrency,
	}
}
