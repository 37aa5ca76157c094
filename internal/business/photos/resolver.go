package photos

import (
	"context"
	"errors"
	"strconv"

	"github.com/leasedesk/rental-portal/internal/platform/storage"
	"github.com/leasedesk/rental-portal/internal/repository"
	"github.com/leasedesk/rental-portal/pkg/model"
	"go.uber.org/zap"
)

// MappingStore persists the unit id -> photo folder name mapping.
type MappingStore interface {
	Get(ctx context.Context, unitID string) (string, error)
	Set(ctx context.Context, unitID, folder string) error
}

// Strategy is one source of photo URLs for a unit. An empty result with a
// nil error means the source has nothing for the unit.
type Strategy interface {
	Name() string
	Photos(ctx context.Context, unit model.RentalUnit) ([]string, error)
}

// Resolver tries each strategy in order and returns the first non-empty result.
type Resolver struct {
	strategies []Strategy
	log        *zap.Logger
}

func NewResolver(log *zap.Logger, strategies ...Strategy) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{strategies: strategies, log: log}
}

// NewDefaultResolver prefers the mapped storage folder and falls back to the
// unit's stored photo list.
func NewDefaultResolver(mappings MappingStore, disk storage.PhotoStorage, log *zap.Logger) *Resolver {
	return NewResolver(log, NewFolderStrategy(mappings, disk), StoredStrategy{})
}

// Resolve never fails; the result is an empty, non-nil list when no source has photos.
func (r *Resolver) Resolve(ctx context.Context, unit model.RentalUnit) []string {
	for _, s := range r.strategies {
		urls, err := s.Photos(ctx, unit)
		if err != nil {
			r.logMiss(s.Name(), unit.ID, err)
			continue
		}
		if len(urls) > 0 {
			return urls
		}
	}
	return []string{}
}

func (r *Resolver) logMiss(strategy string, unitID uint, err error) {
	fields := []zap.Field{
		zap.String("strategy", strategy),
		zap.Uint("unit_id", unitID),
		zap.Error(err),
	}
	if errors.Is(err, repository.ErrMappingNotFound) || errors.Is(err, storage.ErrFolderNotFound) {
		r.log.Debug("photo source empty", fields...)
		return
	}
	r.log.Warn("photo source failed", fields...)
}

func unitKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
