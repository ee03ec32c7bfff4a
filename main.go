// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"flixd/cmd"
	"flixd/internal/data/repository"
	"flixd/internal/tmdb"
	"flixd/internal/usecase"
	"flixd/internal/wire"
	"flixd/pkg/database"
	"flixd/pkg/utils"

	"go.uber.org/zap"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: flixd <full|delta|genres|serve>")
	fmt.Fprintln(os.Stderr, "  full    re-sync the entire catalog (genres first, then movies and tv)")
	fmt.Fprintln(os.Stderr, "  delta   sync entities changed since the last recorded cursor")
	fmt.Fprintln(os.Stderr, "  genres  sync only the merged genre vocabulary")
	fmt.Fprintln(os.Stderr, "  serve   run the HTTP status/trigger server")
	os.Exit(2)
}

func main() {
	if len(os.Args) != 2 {
		usage()
	}
	mode := os.Args[1]

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting flixd",
		zap.String("mode", mode),
		zap.Bool("debug", config.App.Debug),
	)

	// Cooperative shutdown: SIGINT/SIGTERM cancel in-flight runs
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Wire repositories, upstream client and services
	repos := repository.NewRepository(db, logger)
	api := tmdb.NewClient(config.TMDB, logger)
	service := usecase.NewService(repos, api, config, logger)

	switch mode {
	case "full":
		exit(logger, runFull(ctx, service, logger))
	case "delta":
		exit(logger, runDelta(ctx, service))
	case "genres":
		exit(logger, runGenres(ctx, service))
	case "serve":
		app := wire.Wiring(ctx, service, repos, config, logger)
		if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
			logger.Error("Server exited with error", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
	default:
		usage()
	}
}

// runFull syncs the genre vocabulary first, then the full catalog. The
// two are failure-isolated: a genre failure never aborts the media
// sync, but either failing makes the process exit non-zero.
func runFull(ctx context.Context, service *usecase.Service, logger *zap.Logger) error {
	genreErr := runGenres(ctx, service)
	if genreErr != nil {
		logger.Error("Genre sync failed", zap.Error(genreErr))
	}

	_, syncErr := service.Sync.FullSync(ctx)

	if genreErr != nil || syncErr != nil {
		return fmt.Errorf("full sync completed with failures")
	}
	return nil
}

func runDelta(ctx context.Context, service *usecase.Service) error {
	_, err := service.Sync.DeltaSync(ctx)
	return err
}

func runGenres(ctx context.Context, service *usecase.Service) error {
	_, err := service.Genre.Sync(ctx)
	return err
}

func exit(logger *zap.Logger, err error) {
	if err != nil {
		logger.Error("Sync finished with failures", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
	os.Exit(0)
}
