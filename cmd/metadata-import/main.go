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
	"github.com/feral-file/ff-metadata-registry/internal/config"
	"github.com/feral-file/ff-metadata-registry/internal/identity"
	"github.com/feral-file/ff-metadata-registry/internal/importer"
	"github.com/feral-file/ff-metadata-registry/internal/logger"
	"github.com/feral-file/ff-metadata-registry/internal/messaging"
	"github.com/feral-file/ff-metadata-registry/internal/metadata"
	"github.com/feral-file/ff-metadata-registry/internal/providers/jetstream"
	"github.com/feral-file/ff-metadata-registry/internal/store"
)

var (
	configFile  = flag.String("config", "", "Path to configuration file")
	envPath     = flag.String("env", "config/", "Path to environment files")
	recordsFile = flag.String("file", "", "Path to the JSON array of metadata records")
)

func main() {
	flag.Parse()

	if *recordsFile == "" {
		fmt.Fprintln(os.Stderr, "usage: metadata-import -file <records.json> [-config <config.yaml>] [-env <dir>]")
		os.Exit(2)
	}

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadImportConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "metadata-import",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	var dataStore store.Store
	switch cfg.Registry.Storage {
	case config.STORAGE_MEMORY:
		dataStore = store.NewMemoryStore()
		logger.WarnCtx(ctx, "Importing into in-memory storage, nothing is persisted")
	default:
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
		}
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}
		dataStore = store.NewPGStore(db)
	}

	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

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
	}

	identityProvider, err := identity.NewProvider(cfg.Registry.OwnerAddress)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create identity provider", zap.Error(err))
	}

	// Imported records emit the same change events as the bulk endpoint
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
		logger.WarnCtx(ctx, "Change events disabled, imported records are not announced")
	}

	registry := metadata.NewRegistry(
		dataStore,
		identityProvider,
		sequencer,
		publisher,
		jsonAdapter,
		adapter.NewJCS(),
		clock,
		metadata.Config{PublishTimeout: cfg.Events.PublishTimeout},
	)

	// The importer is an operator tool and acts as the registry owner
	ctx = identity.WithCaller(ctx, identityProvider.Owner())

	imp := importer.NewImporter(registry, adapter.NewFileSystem(), jsonAdapter, cfg.BatchSize)
	result, err := imp.Import(ctx, *recordsFile)

	fields := []zap.Field{
		zap.String("file", *recordsFile),
		zap.Int("records", result.Records),
		zap.Int("batches", result.Batches),
		zap.Int("completed_batches", result.CompletedBatches),
	}
	publisher.Close()
	if err != nil {
		logger.ErrorCtx(ctx, err, fields...)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}

	logger.InfoCtx(ctx, "Import completed", fields...)
}
