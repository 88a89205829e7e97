package app

import (
	"context"
	"fmt"

	"github.com/adanyl0v/taskswift/internal/config"
	"github.com/adanyl0v/taskswift/internal/query"
	"github.com/adanyl0v/taskswift/internal/services"
	"github.com/adanyl0v/taskswift/internal/storage/local"
	"github.com/adanyl0v/taskswift/internal/storage/postgres"
)

type migrator interface {
	Migrate(ctx context.Context) error
}

var (
	globalRepository services.Repository
	globalBlobStore  local.BlobStore
)

// OpenRepository opens the backing store selected by the config. It is a
// no-op when a repository is already open.
func OpenRepository(ctx context.Context) (services.Repository, error) {
	if globalRepository != nil {
		return globalRepository, nil
	}

	cfg := config.Global().Storage
	logger := globalLogger.With().
		Str("storage_backend", cfg.Backend).
		Logger()

	switch cfg.Backend {
	case config.BackendPostgres:
		err := ConnectPostgres(ctx)
		if err != nil {
			return nil, err
		}
		globalRepository = postgres.NewRepository(logger, globalPostgresPool)
	case config.BackendSQLite:
		blobs, err := local.NewSQLiteBlobStore(cfg.SQLitePath)
		if err != nil {
			logger.Error().
				Err(err).
				Str("path", cfg.SQLitePath).
				Msg("failed to open sqlite store")
			return nil, err
		}
		globalBlobStore = blobs
		globalRepository = local.NewRepository(logger, blobs)
	default:
		blobs, err := local.NewFileBlobStore(cfg.Dir)
		if err != nil {
			logger.Error().
				Err(err).
				Str("dir", cfg.Dir).
				Msg("failed to open file store")
			return nil, err
		}
		globalBlobStore = blobs
		globalRepository = local.NewRepository(logger, blobs)
	}

	logger.Debug().Msg("opened task repository")
	return globalRepository, nil
}

func CloseRepository() {
	if globalBlobStore != nil {
		err := globalBlobStore.Close()
		if err != nil {
			globalLogger.Error().
				Err(err).
				Msg("failed to close blob store")
		}
		globalBlobStore = nil
	}
	DisconnectPostgres()
	globalRepository = nil
}

// Migrate creates the tables of the opened backend, if it has any.
func Migrate(ctx context.Context) error {
	m, ok := globalRepository.(migrator)
	if !ok {
		m, ok = globalBlobStore.(migrator)
	}
	if !ok {
		globalLogger.Debug().Msg("backend needs no migration")
		return nil
	}

	err := m.Migrate(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to migrate task repository")
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// LoadTaskStore opens and migrates the configured repository, builds the
// task store on it and loads the collection.
func LoadTaskStore(ctx context.Context) (services.TaskService, error) {
	repo, err := OpenRepository(ctx)
	if err != nil {
		return nil, err
	}

	err = Migrate(ctx)
	if err != nil {
		return nil, err
	}

	engine := query.NewEngineForLanguage(config.Global().Query.CollationLanguage)
	store := services.NewTaskService(globalLogger, repo, services.WithQueryEngine(engine))

	_, err = store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func MustLoadTaskStore(ctx context.Context) services.TaskService {
	store, err := LoadTaskStore(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to load task store")
		panic(err)
	}
	return store
}
