package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leasedesk/rental-portal/pkg/model"
	"gorm.io/gorm"
)

var (
	ErrLeaseNotFound     = errors.New("lease not found")
	ErrInvalidTransition = errors.New("invalid lease status transition")
)

// LeaseRepository reads and mutates leases together with their units.
type LeaseRepository struct {
	db *gorm.DB
}

func NewLeaseRepository(db *gorm.DB) *LeaseRepository {
	return &LeaseRepository{db: db}
}

// ListWithRelations loads leases newest first with tenant, unit, landlord and bills.
func (r *LeaseRepository) ListWithRelations(ctx context.Context) ([]model.Lease, error) {
	var leases []model.Lease
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Preload("Unit.Landlord").
		Preload("RentalBills").
		Order("id DESC").
		Find(&leases).Error
	if err != nil {
		return nil, fmt.Errorf("list leases: %w", err)
	}
	return leases, nil
}

// MaintenanceCounts returns the number of maintenance requests per unit id.
func (r *LeaseRepository) MaintenanceCounts(ctx context.Context, unitIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(unitIDs))
	if len(unitIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		UnitID uint
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.MaintenanceRequest{}).
		Select("unit_id, COUNT(*) AS total").
		Where("unit_id IN ?", unitIDs).
		Group("unit_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count maintenance per unit: %w", err)
	}
	for _, row := range rows {
		counts[row.UnitID] = row.Total
	}
	return counts, nil
}

// Terminate marks a lease terminated and releases its unit in one transaction.
// Only active, pending and for_review leases can be terminated.
func (r *LeaseRepository) Terminate(ctx context.Context, id uint, reason string, now time.Time) (model.Lease, error) {
	var lease model.Lease
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lease, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLeaseNotFound
			}
			return fmt.Errorf("load lease %d: %w", id, err)
		}
		switch lease.LeaseStatus {
		case model.LeaseActive, model.LeasePending, model.LeaseForReview:
		default:
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, lease.LeaseStatus, model.LeaseTerminated)
		}

		terminated := now
		lease.LeaseStatus = model.LeaseTerminated
		lease.TerminatedDate = &terminated
		if reason != "" {
			lease.TerminationReason = &reason
		}
		err := tx.Model(&lease).Updates(map[string]interface{}{
			"lease_status":       lease.LeaseStatus,
			"terminated_date":    lease.TerminatedDate,
			"termination_reason": lease.TerminationReason,
		}).Error
		if err != nil {
			return fmt.Errorf("update lease %d: %w", id, err)
		}
		return releaseUnit(tx, lease.UnitID, lease.ID)
	})
	if err != nil {
		return model.Lease{}, err
	}
	return lease, nil
}

// Delete removes a lease and its bills. Deleting an active lease releases its unit.
func (r *LeaseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lease model.Lease
		if err := tx.First(&lease, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLeaseNotFound
			}
			return fmt.Errorf("load lease %d: %w", id, err)
		}
		if err := tx.Where("lease_id = ?", id).Delete(&model.Bill{}).Error; err != nil {
			return fmt.Errorf("delete bills of lease %d: %w", id, err)
		}
		if err := tx.Delete(&model.Lease{}, id).Error; err != nil {
			return fmt.Errorf("delete lease %d: %w", id, err)
		}
		if lease.LeaseStatus != model.LeaseActive {
			return nil
		}
		return releaseUnit(tx, lease.UnitID, lease.ID)
	})
}

// releaseUnit marks the unit available unless another lease on it is still active.
func releaseUnit(tx *gorm.DB, unitID, leaseID uint) error {
	var others int64
	err := tx.Model(&model.Lease{}).
		Where("unit_id = ? AND id <> ? AND lease_status = ?", unitID, leaseID, model.LeaseActive).
		Count(&others).Error
	if err != nil {
		return fmt.Errorf("count active leases on unit %d: %w", unitID, err)
	}
	if others > 0 {
		return nil
	}
	err = tx.Model(&model.RentalUnit{}).
		Where("id = ?", unitID).
		Update("availability_status", model.UnitAvailable).Error
	if err != nil {
		return fmt.Errorf("release unit %d: %w", unitID, err)
	}
	return nil
}
