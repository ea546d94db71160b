package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"eventsMap/internal/config"
	"eventsMap/internal/geocoder"
	"eventsMap/internal/graceful"
	"eventsMap/internal/metrics"
	"eventsMap/internal/repositories"
	"eventsMap/internal/seed"
	"eventsMap/internal/transport/httpServer"
	"eventsMap/internal/transport/httpServer/handlers"
	"eventsMap/internal/transport/httpServer/routers"
	"eventsMap/internal/upload"
	"eventsMap/internal/utils/logger/handlers/slogpretty"
	"eventsMap/internal/utils/logger/sl"
	"eventsMap/internal/viacep"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

var Version = "0.1"

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info(
		"starting events map",
		slog.String("env", cfg.Env),
		slog.String("version", Version),
		slog.String("config", cfg.Path()),
	)

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "seed" {
		if err := runSeed(log, cfg, args[1:]); err != nil {
			log.Error("seed failed", sl.Err(err))
			os.Exit(1)
		}
		return
	}

	if err := serve(log, cfg); err != nil {
		log.Error("server failed", sl.Err(err))
		os.Exit(1)
	}
}

func serve(log *slog.Logger, cfg *config.Config) error {
	metrics.Register()

	repositoryService, err := repositories.Open(context.Background(), log, cfg.DBConfig)
	if err != nil {
		return err
	}

	imageStore := upload.New(cfg.UploadConfig)
	addressService := viacep.NewClient(log, cfg.LookupConfig.ViaCEP)
	geocoderService := geocoder.NewClient(log, cfg.LookupConfig.Geocoding)
	if !geocoderService.Enabled() {
		log.Warn("geocoding api key is not set, events without coordinates stay off the map")
	}

	// HTTP Server
	eventHandler := handlers.NewEventHandler(log, repositoryService, imageStore, geocoderService)
	lookupHandler := handlers.NewLookupHandler(log, addressService, geocoderService)
	router := routers.NewRouter(
		log,
		eventHandler,
		lookupHandler,
		routers.Uploads{Dir: imageStore.Dir(), Prefix: imageStore.PublicPrefix()},
		cfg.HttpServer.MaxBodyBytes,
	)
	httpSrv := httpServer.NewHttpServer(log, router, cfg.HttpServer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// HTTP сервер дренирует запросы раньше, чем закрывается база
	maxSecond := 15 * time.Second
	waitShutdown := graceful.GracefulShutdown(
		ctx,
		maxSecond,
		log,
		graceful.Phase{
			"HTTP server": func(ctx context.Context) error {
				return httpSrv.Shutdown(ctx)
			},
		},
		graceful.Phase{
			"Repository service": func(ctx context.Context) error {
				return repositoryService.Shutdown(ctx)
			},
		},
	)

	listenErr := make(chan error, 1)
	go func() {
		if err := httpSrv.Listen(); err != nil {
			listenErr <- err
			cancel()
		}
	}()

	<-waitShutdown

	select {
	case err := <-listenErr:
		return err
	default:
		return nil
	}
}

// runSeed наполняет базу демонстрационными событиями.
// Без -keep таблица предварительно очищается.
func runSeed(log *slog.Logger, cfg *config.Config, args []string) error {
	op := "main.runSeed()"

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	file := fs.String("file", "", "path to a YAML seed file (default: embedded demo events)")
	keep := fs.Bool("keep", false, "keep existing events instead of resetting the table")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	events, err := seed.Load(*file)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ctx := context.Background()
	repositoryService, err := repositories.Open(ctx, log, cfg.DBConfig)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer repositoryService.Shutdown(ctx)

	if !*keep {
		if err := repositoryService.ResetEvents(ctx); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	n, err := repositoryService.SeedEvents(ctx, events)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("seed completed", slog.Int("events", n), slog.Bool("reset", !*keep))
	return nil
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog(slog.LevelDebug)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = setupPrettySlog(slog.LevelInfo)
	default: // If env config is invalid, set prod settings by default due to security
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog(level slog.Level) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
