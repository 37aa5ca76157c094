package app

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/go-redis/redis/v8"
	"github.com/leasedesk/rental-portal/internal/business/leases"
	"github.com/leasedesk/rental-portal/internal/business/performance"
	"github.com/leasedesk/rental-portal/internal/business/photos"
	"github.com/leasedesk/rental-portal/internal/business/units"
	"github.com/leasedesk/rental-portal/internal/platform/config"
	"github.com/leasedesk/rental-portal/internal/platform/database"
	firestoreclient "github.com/leasedesk/rental-portal/internal/platform/firestore"
	redisclient "github.com/leasedesk/rental-portal/internal/platform/redis"
	"github.com/leasedesk/rental-portal/internal/platform/storage"
	"github.com/leasedesk/rental-portal/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MappingStore is a folder mapping backend that also supports bulk access.
type MappingStore interface {
	photos.MappingStore
	All(ctx context.Context) (map[string]string, error)
	Import(ctx context.Context, mappings map[string]string) error
}

// App holds the connected backends and the services built on them.
type App struct {
	Config config.Config
	Log    *zap.Logger

	DB        *gorm.DB
	Firestore *firestore.Client
	Redis     *redis.Client

	Mappings MappingStore
	Disk     storage.PhotoStorage

	Units       *units.Service
	Leases      *leases.Service
	Performance *performance.Service
}

// New connects every backend the config selects. Call Close when done,
// also after an error.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		return a, err
	}
	a.DB = db
	if err := database.Ping(ctx, db); err != nil {
		return a, fmt.Errorf("database ping: %w", err)
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return a, err
		}
	}

	if cfg.FirestoreEnabled() {
		if a.Firestore, err = firestoreclient.Connect(ctx, cfg, log); err != nil {
			return a, err
		}
	}

	switch cfg.FolderMappingBackend {
	case config.MappingBackendRedis:
		if a.Redis, err = redisclient.Connect(ctx, cfg); err != nil {
			return a, err
		}
		a.Mappings = repository.NewRedisMappingStore(a.Redis)
	case config.MappingBackendFirestore:
		a.Mappings = repository.NewFirestoreMappingStore(a.Firestore)
	default:
		a.Mappings = repository.NewFileMappingStore(cfg.FolderMappingFile)
	}

	switch cfg.PhotoStorageBackend {
	case config.StorageBackendS3:
		if a.Disk, err = storage.NewS3FromConfig(ctx, cfg); err != nil {
			return a, err
		}
	default:
		a.Disk = storage.NewLocal(cfg.PublicStorageRoot, cfg.PublicStorageURL)
	}

	// a nil *SnapshotRepository must not reach the service as a non-nil interface
	var snapshots performance.SnapshotStore
	if a.Firestore != nil {
		snapshots = repository.NewSnapshotRepository(a.Firestore)
	}

	unitRepo := repository.NewUnitRepository(db)
	resolver := photos.NewDefaultResolver(a.Mappings, a.Disk, log.Named("photos"))
	a.Units = units.NewService(unitRepo, resolver, a.Mappings, log.Named("units")).
		WithPhotoWorkers(cfg.PhotoWorkers)
	a.Leases = leases.NewService(repository.NewLeaseRepository(db), log.Named("leases"))
	a.Performance = performance.NewService(unitRepo, snapshots, log.Named("performance"))

	log.Info("backends ready",
		zap.String("db_driver", cfg.DBDriver),
		zap.String("folder_mappings", cfg.FolderMappingBackend),
		zap.String("photo_storage", cfg.PhotoStorageBackend),
		zap.Bool("snapshots", snapshots != nil),
	)
	return a, nil
}

// Close releases every open connection.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.Warn("close redis", zap.Error(err))
		}
	}
	if a.Firestore != nil {
		if err := a.Firestore.Close(); err != nil {
			a.Log.Warn("close firestore", zap.Error(err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.Log.Warn("close database", zap.Error(err))
			}
		}
	}
}
