package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-metadata-registry/internal/adapter"
	"github.com/feral-file/ff-metadata-registry/internal/api/middleware"
	"github.com/feral-file/ff-metadata-registry/internal/api/server"
	"github.com/feral-file/ff-metadata-registry/internal/config"
	"github.com/feral-file/ff-metadata-registry/internal/identity"
	"github.com/feral-file/ff-metadata-registry/internal/logger"
	"github.com/feral-file/ff-metadata-registry/internal/messaging"
	"github.com/feral-file/ff-metadata-registry/internal/metadata"
	"github.com/feral-file/ff-metadata-registry/internal/providers/jetstream"
	"github.com/feral-file/ff-metadata-registry/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "metadata-registry-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Metadata Registry API")

	// Initialize store
	var dataStore store.Store
	switch cfg.Registry.Storage {
	case config.STORAGE_MEMORY:
		dataStore = store.NewMemoryStore()
		logger.WarnCtx(ctx, "Using in-memory storage, records are lost on restart")
	default:
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
		}

		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to database",
			zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
			zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
		)

		dataStore = store.NewPGStore(db)
	}

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()

	// Initialize sequencer, the counter resumes after the highest stored marker
	var sequencer adapter.Sequencer
	switch cfg.Registry.Sequencer {
	case config.SEQUENCER_CLOCK:
		sequencer = adapter.NewClockSequencer(clock)
	default:
		seed, err := dataStore.MaxSequence(ctx)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to read max sequence", zap.Error(err))
		}
		sequencer = adapter.NewCounterSequencer(seed)
		logger.InfoCtx(ctx, "Counter sequencer seeded", zap.Uint64("seed", seed))
	}

	identityProvider, err := identity.NewProvider(cfg.Registry.OwnerAddress)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create identity provider", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Registry owner configured", zap.String("owner", identityProvider.Owner().String()))

	// Initialize event publisher
	var publisher messaging.Publisher
	if cfg.Events.Enabled {
		publisher, err = jetstream.NewPublisher(jetstream.Config{
			URL:               cfg.NATS.URL,
			SubjectPrefix:     cfg.NATS.SubjectPrefix,
			MaxReconnects:     cfg.NATS.MaxReconnects,
			ReconnectWait:     cfg.NATS.ReconnectWait,
			ConnectionName:    cfg.NATS.ConnectionName,
			PublishMaxElapsed: cfg.NATS.PublishMaxElapsed,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	} else {
		publisher = messaging.NewNoopPublisher()
		logger.InfoCtx(ctx, "Change events disabled")
	}
	defer publisher.Close()

	registry := metadata.NewRegistry(
		dataStore,
		identityProvider,
		sequencer,
		publisher,
		jsonAdapter,
		jcsAdapter,
		clock,
		metadata.Config{PublishTimeout: cfg.Events.PublishTimeout},
	)

	apiKeys, err := cfg.Auth.APIKeyMap()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to parse API keys", zap.Error(err))
	}

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      apiKeys,
		},
	}

	srv := server.New(serverConfig, registry)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Shutdown context must not derive from the canceled ctx
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
