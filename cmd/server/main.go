package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/arcade/internal/config"
	"github.com/playperu/arcade/internal/database"
	"github.com/playperu/arcade/internal/handler/health"
	"github.com/playperu/arcade/internal/migrations"
	"github.com/playperu/arcade/internal/negotiation"
	"github.com/playperu/arcade/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	params := negotiation.Params{
		Budget:        cfg.Negotiation.Budget,
		StartingPrice: cfg.Negotiation.StartingPrice,
		MinPrice:      cfg.Negotiation.MinPrice,
		StartingTrust: cfg.Negotiation.StartingTrust,
	}
	if err := params.Validate(); err != nil {
		return fmt.Errorf("negotiation config: %w", err)
	}

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBDriver, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "driver", cfg.DBDriver, "path", cfg.DBPath)

	results := server.NewSQLiteStore(db)
	checks := map[string]health.Checker{"sqlite": health.DB(db)}

	// --- Redis (optional) ---
	var board server.Leaderboard
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		board = server.NewRedisLeaderboard(rdb)
		checks["redis"] = health.Redis(rdb)
		logger.Info("connected to redis")
	}

	// --- Catalog ---
	cat, err := server.LoadCatalog(ctx, logger, results, cfg.Catalog)
	if err != nil {
		return err
	}

	// --- HTTP Server ---
	sessions := server.NewSessions()
	srv := server.New(cfg.HTTPAddr, server.Deps{
		Logger:      logger,
		Sessions:    sessions,
		Broker:      server.NewBroker(),
		Results:     results,
		Leaderboard: board,
		Catalog:     cat,
		Negotiation: params,
		Admin:       cfg.Admin,
		Checks:      checks,
		SPADir:      cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	g.Go(func() error {
		return sessions.RunSweeper(gctx, logger, cfg.SessionTTL)
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
