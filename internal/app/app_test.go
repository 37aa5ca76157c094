package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/leasedesk/rental-portal/internal/business/performance"
	"github.com/leasedesk/rental-portal/internal/platform/config"
	"github.com/leasedesk/rental-portal/internal/repository"
	"github.com/leasedesk/rental-portal/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func localConfig(t *testing.T) config.Config {
	dir := t.TempDir()
	return config.Config{
		Port:                 "0",
		DBDriver:             "sqlite",
		DatabaseURL:          ":memory:",
		AutoMigrate:          true,
		FolderMappingBackend: config.MappingBackendFile,
		FolderMappingFile:    filepath.Join(dir, "unit_folder_mappings.json"),
		PhotoStorageBackend:  config.StorageBackendLocal,
		PublicStorageRoot:    filepath.Join(dir, "public"),
		PublicStorageURL:     "/storage",
	}
}

func TestNew_LocalBackends(t *testing.T) {
	cfg := localConfig(t)
	require.NoError(t, cfg.Validate())

	a, err := New(context.Background(), cfg, zap.NewNop())
	t.Cleanup(a.Close)
	require.NoError(t, err)

	assert.IsType(t, &repository.FileMappingStore{}, a.Mappings)
	assert.Nil(t, a.Firestore)
	assert.Nil(t, a.Redis)

	require.NoError(t, a.DB.Create(&model.RentalUnit{Address: "123 Main St", AvailabilityStatus: model.UnitOccupied}).Error)
	rows, err := a.Performance.Report(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 100.0, rows[0].Occupancy)

	_, _, err = a.Performance.Snapshot(context.Background())
	assert.ErrorIs(t, err, performance.ErrSnapshotsDisabled)
}

func TestNew_RedisMappings(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := localConfig(t)
	cfg.FolderMappingBackend = config.MappingBackendRedis
	cfg.RedisAddr = mr.Addr()

	a, err := New(context.Background(), cfg, zap.NewNop())
	t.Cleanup(a.Close)
	require.NoError(t, err)

	require.NoError(t, a.Mappings.Set(context.Background(), "1", "oak-1"))
	assert.Equal(t, "oak-1", mr.HGet("rental_units:folder_mappings", "1"))
}
