package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/leasedesk/rental-portal/pkg/model"
	"gorm.io/gorm"
)

// ErrUnitNotFound is returned when a rental unit id does not exist.
var ErrUnitNotFound = errors.New("rental unit not found")

// UnitRepository reads rental units and their related records.
type UnitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

// ListWithActivity loads every unit with leases, their bills and the unit's
// maintenance requests, ordered by id.
func (r *UnitRepository) ListWithActivity(ctx context.Context) ([]model.RentalUnit, error) {
	var units []model.RentalUnit
	err := r.db.WithContext(ctx).
		Preload("Leases.RentalBills").
		Preload("MaintenanceRequests").
		Order("id").
		Find(&units).Error
	if err != nil {
		return nil, fmt.Errorf("list units with activity: %w", err)
	}
	return units, nil
}

// ListWithLandlord loads every unit with its landlord and active leases, ordered by id.
func (r *UnitRepository) ListWithLandlord(ctx context.Context) ([]model.RentalUnit, error) {
	var units []model.RentalUnit
	err := r.db.WithContext(ctx).
		Preload("Landlord").
		Preload("Leases", "lease_status = ?", model.LeaseActive).
		Order("id").
		Find(&units).Error
	if err != nil {
		return nil, fmt.Errorf("list units with landlord: %w", err)
	}
	return units, nil
}

// List loads bare units, ordered by id.
func (r *UnitRepository) List(ctx context.Context) ([]model.RentalUnit, error) {
	var units []model.RentalUnit
	if err := r.db.WithContext(ctx).Order("id").Find(&units).Error; err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}

// ListByStatus loads units with the given availability status.
func (r *UnitRepository) ListByStatus(ctx context.Context, status string) ([]model.RentalUnit, error) {
	var units []model.RentalUnit
	err := r.db.WithContext(ctx).
		Where("availability_status = ?", status).
		Order("id").
		Find(&units).Error
	if err != nil {
		return nil, fmt.Errorf("list %s units: %w", status, err)
	}
	return units, nil
}

func (r *UnitRepository) GetByID(ctx context.Context, id uint) (model.RentalUnit, error) {
	var unit model.RentalUnit
	err := r.db.WithContext(ctx).First(&unit, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.RentalUnit{}, ErrUnitNotFound
		}
		return model.RentalUnit{}, fmt.Errorf("get unit %d: %w", id, err)
	}
	return unit, nil
}

// CountUnits counts units; an empty status counts all of them.
func (r *UnitRepository) CountUnits(ctx context.Context, status string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.RentalUnit{})
	if status != "" {
		q = q.Where("availability_status = ?", status)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count units: %w", err)
	}
	return n, nil
}

func (r *UnitRepository) CountMaintenanceRequests(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.MaintenanceRequest{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count maintenance requests: %w", err)
	}
	return n, nil
}
