package main

import (
	"cleaning-route-service/internal/adapters/optimizer"
	"cleaning-route-service/internal/adapters/repositories"
	"cleaning-route-service/internal/adapters/roster"
	"cleaning-route-service/internal/api"
	"cleaning-route-service/internal/config"
	"cleaning-route-service/internal/platform/db"
	"cleaning-route-service/internal/platform/metrics"
	"cleaning-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, roster file, optimizer) behind ports
// and runs the operator API next to the admin listener.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	setupLogger(cfg)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, err := cfg.BuildPolicy()
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.Database.URL, db.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	})
	if err != nil {
		return err
	}
	defer database.Close()

	locations := repositories.NewPostgresLocationRepository(database, repositories.LocationFilter{
		CleaningBy:           cfg.Locations.CleaningBy,
		PlacementType:        cfg.Locations.PlacementType,
		PrefectureID:         cfg.Locations.PrefectureID,
		ExcludedNamePrefixes: cfg.Locations.ExcludedNamePrefixes,
		IncludeAttendedOnly:  cfg.Locations.IncludeAttendedOnly,
	})
	drivers := roster.NewYAMLDriverRoster(cfg.Roster.Path)

	solver, err := newOptimizer(ctx, cfg, policy.TravelMode, policy.LoadType)
	if err != nil {
		return err
	}

	metrics.RegisterDefault()

	router := api.NewRouter(api.Dependencies{
		Locations:     locations,
		Roster:        drivers,
		Optimizer:     solver,
		Parent:        cfg.Optimizer.Parent,
		Policy:        policy,
		SolverTimeout: cfg.SolverTimeout,
	})

	errorLog := stdlog.New(log.Logger, "", 0)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          errorLog,
	}
	admin := &http.Server{
		Addr:              cfg.Server.AdminAddr,
		Handler:           api.NewAdminRouter(database),
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          errorLog,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range []*http.Server{srv, admin} {
		g.Go(func() error {
			log.Info().Str("addr", s.Addr).Msg("server listening")
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen %s: %w", s.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return errors.Join(srv.Shutdown(shutdownCtx), admin.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

func newOptimizer(ctx context.Context, cfg *config.Config, travelMode, loadType string) (ports.TourOptimizer, error) {
	if cfg.Optimizer.Mode == "stub" {
		log.Warn().Msg("optimizer in stub mode: routes are planned locally, not optimized")
		return &optimizer.StubOptimizer{}, nil
	}

	creds, err := os.ReadFile(cfg.Optimizer.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read optimizer credentials: %w", err)
	}

	client, err := optimizer.NewRouteOptimizationClientFromCredentials(ctx, creds, optimizer.Options{
		BaseURL:           cfg.Optimizer.BaseURL,
		Timeout:           cfg.SolverTimeout,
		RequestsPerMinute: cfg.Optimizer.RequestsPerMinute,
		Burst:             cfg.Optimizer.Burst,
		TravelMode:        travelMode,
		LoadType:          loadType,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
