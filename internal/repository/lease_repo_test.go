package repository

import (
	"context"
	"testing"
	"time"

	"github.com/leasedesk/rental-portal/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedLease(t *testing.T, db *gorm.DB, status string) (model.RentalUnit, model.Lease) {
	t.Helper()
	tenant := model.Tenant{UserName: "Ben Cruz", Email: "ben@example.com"}
	require.NoError(t, db.Create(&tenant).Error)
	unit := model.RentalUnit{Address: "9 Elm Rd", AvailabilityStatus: model.UnitOccupied, RentPrice: 950}
	require.NoError(t, db.Create(&unit).Error)
	lease := model.Lease{UnitID: unit.ID, TenantID: tenant.ID, LeaseStatus: status, MonthlyRent: 950}
	require.NoError(t, db.Create(&lease).Error)
	return unit, lease
}

func unitStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var u model.RentalUnit
	require.NoError(t, db.First(&u, id).Error)
	return u.AvailabilityStatus
}

func TestLeaseRepository_ListWithRelations(t *testing.T) {
	db := newTestDB(t)
	unit, lease := seedLease(t, db, model.LeaseActive)
	require.NoError(t, db.Create(&model.Bill{LeaseID: lease.ID, PaymentStatus: model.BillPending}).Error)
	require.NoError(t, db.Create(&model.MaintenanceRequest{UnitID: unit.ID, RequestStatus: model.MaintenancePending}).Error)
	require.NoError(t, db.Create(&model.MaintenanceRequest{UnitID: unit.ID, RequestStatus: model.MaintenanceCompleted}).Error)
	repo := NewLeaseRepository(db)
	ctx := context.Background()

	leases, err := repo.ListWithRelations(ctx)
	require.NoError(t, err)
	require.Len(t, leases, 1)
	require.NotNil(t, leases[0].Tenant)
	assert.Equal(t, "Ben Cruz", leases[0].Tenant.UserName)
	require.NotNil(t, leases[0].Unit)
	assert.Equal(t, "9 Elm Rd", leases[0].Unit.Address)
	assert.Len(t, leases[0].RentalBills, 1)

	counts, err := repo.MaintenanceCounts(ctx, []uint{unit.ID, 404})
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[unit.ID])
	assert.EqualValues(t, 0, counts[404])
}

func TestLeaseRepository_Terminate(t *testing.T) {
	db := newTestDB(t)
	unit, lease := seedLease(t, db, model.LeaseActive)
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	got, err := NewLeaseRepository(db).Terminate(context.Background(), lease.ID, "tenant relocated", now)
	require.NoError(t, err)
	assert.Equal(t, model.LeaseTerminated, got.LeaseStatus)
	require.NotNil(t, got.TerminatedDate)
	assert.True(t, now.Equal(*got.TerminatedDate))

	var stored model.Lease
	require.NoError(t, db.First(&stored, lease.ID).Error)
	assert.Equal(t, model.LeaseTerminated, stored.LeaseStatus)
	require.NotNil(t, stored.TerminationReason)
	assert.Equal(t, "tenant relocated", *stored.TerminationReason)
	assert.Equal(t, model.UnitAvailable, unitStatus(t, db, unit.ID))
}

func TestLeaseRepository_TerminateRejectsClosedLease(t *testing.T) {
	db := newTestDB(t)
	unit, lease := seedLease(t, db, model.LeaseExpired)

	_, err := NewLeaseRepository(db).Terminate(context.Background(), lease.ID, "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, model.UnitOccupied, unitStatus(t, db, unit.ID), "unit must be untouched on rollback")

	_, err = NewLeaseRepository(db).Terminate(context.Background(), 999, "", time.Now())
	assert.ErrorIs(t, err, ErrLeaseNotFound)
}

func TestLeaseRepository_TerminateKeepsUnitWithOtherActiveLease(t *testing.T) {
	db := newTestDB(t)
	unit, pending := seedLease(t, db, model.LeasePending)
	require.NoError(t, db.Create(&model.Lease{UnitID: unit.ID, TenantID: pending.TenantID, LeaseStatus: model.LeaseActive}).Error)

	_, err := NewLeaseRepository(db).Terminate(context.Background(), pending.ID, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.UnitOccupied, unitStatus(t, db, unit.ID))
}

func TestLeaseRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	unit, lease := seedLease(t, db, model.LeaseActive)
	require.NoError(t, db.Create(&model.Bill{LeaseID: lease.ID, PaymentStatus: model.BillPaid}).Error)
	require.NoError(t, db.Create(&model.Bill{LeaseID: lease.ID, PaymentStatus: model.BillPending}).Error)
	repo := NewLeaseRepository(db)

	require.NoError(t, repo.Delete(context.Background(), lease.ID))

	var bills int64
	require.NoError(t, db.Model(&model.Bill{}).Where("lease_id = ?", lease.ID).Count(&bills).Error)
	assert.Zero(t, bills)
	assert.ErrorIs(t, db.First(&model.Lease{}, lease.ID).Error, gorm.ErrRecordNotFound)
	assert.Equal(t, model.UnitAvailable, unitStatus(t, db, unit.ID))

	assert.ErrorIs(t, repo.Delete(context.Background(), lease.ID), ErrLeaseNotFound)
}
