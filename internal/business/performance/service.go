package performance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leasedesk/rental-portal/internal/repository"
	"github.com/leasedesk/rental-portal/pkg/model"
	"github.com/leasedesk/rental-portal/pkg/util"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// ErrSnapshotsDisabled is returned when no snapshot store is configured.
var ErrSnapshotsDisabled = errors.New("performance snapshots are not configured")

// UnitStore loads units with leases, bills and maintenance requests attached.
type UnitStore interface {
	ListWithActivity(ctx context.Context) ([]model.RentalUnit, error)
}

// SnapshotStore persists the latest performance snapshot.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap model.PerformanceSnapshot) error
	LatestSnapshot(ctx context.Context) (model.PerformanceSnapshot, error)
}

// Service computes the per-address performance report.
type Service struct {
	units     UnitStore
	snapshots SnapshotStore
	now       func() time.Time
	log       *zap.Logger
}

// NewService wires the report. snapshots may be nil, in which case the
// snapshot operations return ErrSnapshotsDisabled.
func NewService(units UnitStore, snapshots SnapshotStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{units: units, snapshots: snapshots, now: time.Now, log: log}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Report(ctx context.Context) ([]model.PropertyPerformance, error) {
	units, err := s.units.ListWithActivity(ctx)
	if err != nil {
		return nil, fmt.Errorf("load units: %w", err)
	}
	return Aggregate(units, s.now()), nil
}

// Snapshot computes the report and stores it unless it matches the latest
// stored snapshot. The returned bool reports whether a write happened.
func (s *Service) Snapshot(ctx context.Context) (model.PerformanceSnapshot, bool, error) {
	if s.snapshots == nil {
		return model.PerformanceSnapshot{}, false, ErrSnapshotsDisabled
	}
	rows, err := s.Report(ctx)
	if err != nil {
		return model.PerformanceSnapshot{}, false, err
	}
	hash := util.HashPerformance(rows)

	prev, err := s.snapshots.LatestSnapshot(ctx)
	switch {
	case err == nil && prev.DataHash == hash:
		s.log.Info("performance unchanged, snapshot skipped", zap.String("snapshot_id", prev.SnapshotID))
		return prev, false, nil
	case err != nil && !errors.Is(err, repository.ErrSnapshotNotFound):
		return model.PerformanceSnapshot{}, false, fmt.Errorf("load latest snapshot: %w", err)
	}

	now := s.now().UTC()
	snap := model.PerformanceSnapshot{
		SnapshotID:  ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		GeneratedAt: now,
		DataHash:    hash,
		Properties:  rows,
	}
	if err := s.snapshots.SaveSnapshot(ctx, snap); err != nil {
		return model.PerformanceSnapshot{}, false, err
	}
	s.log.Info("performance snapshot saved",
		zap.String("snapshot_id", snap.SnapshotID),
		zap.Int("properties", len(rows)),
	)
	return snap, true, nil
}

func (s *Service) Latest(ctx context.Context) (model.PerformanceSnapshot, error) {
	if s.snapshots == nil {
		return model.PerformanceSnapshot{}, ErrSnapshotsDisabled
	}
	return s.snapshots.LatestSnapshot(ctx)
}
