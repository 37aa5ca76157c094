package leases

import (
	"context"
	"testing"
	"time"

	"github.com/leasedesk/rental-portal/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeStore struct {
	leases     []model.Lease
	counts     map[uint]int64
	askedUnits []uint

	terminated struct {
		id     uint
		reason string
		now    time.Time
	}
	deleted []uint
	err     error
}

func (f *fakeStore) ListWithRelations(context.Context) ([]model.Lease, error) {
	return f.leases, f.err
}

func (f *fakeStore) MaintenanceCounts(_ context.Context, unitIDs []uint) (map[uint]int64, error) {
	f.askedUnits = unitIDs
	return f.counts, nil
}

func (f *fakeStore) Terminate(_ context.Context, id uint, reason string, now time.Time) (model.Lease, error) {
	if f.err != nil {
		return model.Lease{}, f.err
	}
	f.terminated.id, f.terminated.reason, f.terminated.now = id, reason, now
	return model.Lease{ID: id, UnitID: 10, LeaseStatus: model.LeaseTerminated, TerminatedDate: &now}, nil
}

func (f *fakeStore) Delete(_ context.Context, id uint) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func day(offset int) *time.Time {
	t := now.AddDate(0, 0, offset)
	return &t
}

func TestService_ListCounters(t *testing.T) {
	store := &fakeStore{
		leases: []model.Lease{
			{ID: 2, UnitID: 10, RentalBills: []model.Bill{
				{PaymentStatus: model.BillPaid, DueDate: day(-40)},
				{PaymentStatus: model.BillPending, DueDate: day(-3)},
				{PaymentStatus: model.BillPartial, DueDate: day(10)},
				{PaymentStatus: model.BillOverdue},
			}},
			{ID: 1, UnitID: 10},
			{ID: 3, UnitID: 11, RentalBills: []model.Bill{{PaymentStatus: model.BillPending}}},
		},
		counts: map[uint]int64{10: 4},
	}
	svc := NewService(store, nil).WithClock(func() time.Time { return now })

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []uint{10, 11}, store.askedUnits)

	assert.EqualValues(t, 4, rows[0].TotalBills)
	assert.EqualValues(t, 2, rows[0].PendingBills)
	assert.EqualValues(t, 2, rows[0].OverdueBills)
	assert.EqualValues(t, 4, rows[0].MaintenanceRequests)

	assert.Zero(t, rows[1].TotalBills)
	assert.EqualValues(t, 4, rows[1].MaintenanceRequests)

	assert.EqualValues(t, 1, rows[2].PendingBills)
	assert.Zero(t, rows[2].OverdueBills)
	assert.Zero(t, rows[2].MaintenanceRequests)
}

func TestService_Terminate(t *testing.T) {
	store := &fakeStore{}
	core, logs := observer.New(zap.InfoLevel)
	svc := NewService(store, zap.New(core)).WithClock(func() time.Time { return now })

	lease, err := svc.Terminate(context.Background(), 5, "  moved out ")
	require.NoError(t, err)
	assert.Equal(t, model.LeaseTerminated, lease.LeaseStatus)
	assert.Equal(t, "moved out", store.terminated.reason)
	assert.True(t, now.Equal(store.terminated.now))
	assert.Equal(t, 1, logs.FilterMessage("lease terminated").Len())
}

func TestService_ErrorsPassThrough(t *testing.T) {
	store := &fakeStore{err: ErrInvalidTransition}
	svc := NewService(store, nil)

	_, err := svc.Terminate(context.Background(), 5, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	store.err = ErrLeaseNotFound
	assert.ErrorIs(t, svc.Delete(context.Background(), 5), ErrLeaseNotFound)
	assert.Empty(t, store.deleted)
}
