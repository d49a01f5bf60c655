// Command server runs the marketplace API: it subscribes to every tracked
// collection on the configured backend, keeps the in-memory entity store
// fresh, and serves the read and write paths over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/hajobjah/marketplace/internal/api"
	"github.com/hajobjah/marketplace/internal/api/handler"
	"github.com/hajobjah/marketplace/internal/core/moderation"
	"github.com/hajobjah/marketplace/internal/core/ports"
	"github.com/hajobjah/marketplace/internal/core/service"
	"github.com/hajobjah/marketplace/internal/core/store"
	"github.com/hajobjah/marketplace/internal/core/subscription"
	"github.com/hajobjah/marketplace/internal/infrastructure/blob"
	"github.com/hajobjah/marketplace/internal/infrastructure/config"
	mongodb "github.com/hajobjah/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/hajobjah/marketplace/internal/infrastructure/db/redis"
	"github.com/hajobjah/marketplace/pkg/logger"
)

// backend bundles everything a storage flavour provides.
type backend struct {
	users        ports.UserRepository
	jobs         ports.JobRepository
	helpers      ports.HelperRepository
	interactions ports.InteractionRepository
	board        ports.BoardRepository
	config       ports.ConfigRepository
	source       ports.CollectionSource
	pingers      map[string]handler.Pinger
	close        func(ctx context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("configuration error")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	be, err := buildBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Backend).Msg("backend init failed")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := be.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("backend close")
		}
	}()

	blobs, err := blob.NewS3Store(blob.Config{
		Region:          cfg.S3.Region,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		Bucket:          cfg.S3.Bucket,
		Endpoint:        cfg.S3.Endpoint,
		DisableSSL:      cfg.S3.DisableSSL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("blob store init failed")
	}

	st := store.New()
	filter := moderation.NewFilter(moderation.DefaultBlockedTerms)

	coordinator := subscription.New(be.source, be.config, st, log)
	coordinator.Start(ctx)

	deps := api.Dependencies{
		Store:     st,
		Auth:      service.NewAuthService(be.users, cfg.JWTSecret, cfg.TokenTTL, log),
		Profile:   service.NewProfileService(be.users, blobs, st, filter, log),
		Jobs:      service.NewJobService(be.jobs, st, filter, log),
		Helpers:   service.NewHelperService(be.helpers, be.interactions, st, filter, log),
		Board:     service.NewBoardService(be.board, blobs, st, filter, log),
		Admin:     service.NewAdminService(be.users, be.jobs, be.helpers, be.board, be.config, st, log),
		Binder:    coordinator,
		Pingers:   be.pingers,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	}
	e := api.NewRouter(deps)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	coordinator.Wait()
}

func buildBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return &backend{
			users:        redisdb.NewUserRepository(client),
			jobs:         redisdb.NewJobRepository(client),
			helpers:      redisdb.NewHelperRepository(client),
			interactions: redisdb.NewInteractionRepository(client),
			board:        redisdb.NewBoardRepository(client),
			config:       redisdb.NewConfigRepository(client),
			source:       redisdb.NewSource(client, log),
			pingers: map[string]handler.Pinger{
				"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
			},
			close: func(context.Context) error { return client.Close() },
		}, nil

	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		users := mongodb.NewUserRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return &backend{
			users:        users,
			jobs:         mongodb.NewJobRepository(db),
			helpers:      mongodb.NewHelperRepository(db),
			interactions: mongodb.NewInteractionRepository(db),
			board:        mongodb.NewBoardRepository(client, db),
			config:       mongodb.NewConfigRepository(db),
			source:       mongodb.NewSource(db, log),
			pingers: map[string]handler.Pinger{
				"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			},
			close: client.Disconnect,
		}, nil
	}
	return nil, errors.New("unknown backend " + cfg.Backend)
}
