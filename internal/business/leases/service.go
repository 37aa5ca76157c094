package leases

import (
	"context"
	"strings"
	"time"

	"github.com/leasedesk/rental-portal/internal/repository"
	"github.com/leasedesk/rental-portal/pkg/model"
	"go.uber.org/zap"
)

var (
	ErrLeaseNotFound     = repository.ErrLeaseNotFound
	ErrInvalidTransition = repository.ErrInvalidTransition
)

// Store reads and mutates leases.
type Store interface {
	ListWithRelations(ctx context.Context) ([]model.Lease, error)
	MaintenanceCounts(ctx context.Context, unitIDs []uint) (map[uint]int64, error)
	Terminate(ctx context.Context, id uint, reason string, now time.Time) (model.Lease, error)
	Delete(ctx context.Context, id uint) error
}

type Service struct {
	leases Store
	now    func() time.Time
	log    *zap.Logger
}

func NewService(leases Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{leases: leases, now: time.Now, log: log}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List returns every lease with its bill and maintenance counters.
func (s *Service) List(ctx context.Context) ([]model.LeaseRow, error) {
	leases, err := s.leases.ListWithRelations(ctx)
	if err != nil {
		return nil, err
	}

	unitIDs := make([]uint, 0, len(leases))
	seen := make(map[uint]bool, len(leases))
	for _, l := range leases {
		if !seen[l.UnitID] {
			seen[l.UnitID] = true
			unitIDs = append(unitIDs, l.UnitID)
		}
	}
	maintenance, err := s.leases.MaintenanceCounts(ctx, unitIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rows := make([]model.LeaseRow, 0, len(leases))
	for _, l := range leases {
		row := model.LeaseRow{
			Lease:               l,
			TotalBills:          int64(len(l.RentalBills)),
			MaintenanceRequests: maintenance[l.UnitID],
		}
		for _, b := range l.RentalBills {
			if isPending(b) {
				row.PendingBills++
			}
			if isOverdue(b, now) {
				row.OverdueBills++
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Terminate ends a lease and frees its unit.
func (s *Service) Terminate(ctx context.Context, id uint, reason string) (model.Lease, error) {
	lease, err := s.leases.Terminate(ctx, id, strings.TrimSpace(reason), s.now())
	if err != nil {
		return model.Lease{}, err
	}
	s.log.Info("lease terminated", zap.Uint("lease_id", id), zap.Uint("unit_id", lease.UnitID))
	return lease, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.leases.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("lease deleted", zap.Uint("lease_id", id))
	return nil
}

func isPending(b model.Bill) bool {
	return b.PaymentStatus == model.BillPending || b.PaymentStatus == model.BillPartial
}

// isOverdue counts bills marked overdue and unpaid bills past their due date.
func isOverdue(b model.Bill, now time.Time) bool {
	if b.PaymentStatus == model.BillOverdue {
		return true
	}
	return b.PaymentStatus != model.BillPaid && b.DueDate != nil && b.DueDate.Before(now)
}
