package performance

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const snapshotTimeout = 2 * time.Minute

// Scheduler runs Service.Snapshot on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
	svc  *Service
	log  *zap.Logger
}

// NewScheduler validates spec (standard five-field cron syntax) and registers the job.
func NewScheduler(spec string, svc *Service, log *zap.Logger) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scheduler{cron: cron.New(), svc: svc, log: log}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("schedule snapshot %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running job, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("snapshot job still running at shutdown")
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	start := time.Now()
	snap, saved, err := s.svc.Snapshot(ctx)
	if err != nil {
		s.log.Error("scheduled snapshot failed", zap.Error(err))
		return
	}
	s.log.Info("scheduled snapshot finished",
		zap.String("snapshot_id", snap.SnapshotID),
		zap.Bool("saved", saved),
		zap.Duration("took", time.Since(start)),
	)
}
