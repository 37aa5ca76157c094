package photos

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/leasedesk/rental-portal/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idStrategy struct {
	calls atomic.Int32
}

func (s *idStrategy) Name() string { return "id" }

func (s *idStrategy) Photos(_ context.Context, unit model.RentalUnit) ([]string, error) {
	s.calls.Add(1)
	return []string{fmt.Sprintf("/%d.jpg", unit.ID)}, nil
}

func TestResolveAll_KeepsOrder(t *testing.T) {
	s := &idStrategy{}
	r := NewResolver(nil, s)

	units := make([]model.RentalUnit, 50)
	for i := range units {
		units[i] = model.RentalUnit{ID: uint(i + 1)}
	}

	got := r.ResolveAll(context.Background(), units, 4)
	require.Len(t, got, 50)
	for i, urls := range got {
		assert.Equal(t, []string{fmt.Sprintf("/%d.jpg", i+1)}, urls)
	}
	assert.EqualValues(t, 50, s.calls.Load())
}

func TestResolveAll_Empty(t *testing.T) {
	r := NewResolver(nil, &idStrategy{})
	assert.Empty(t, r.ResolveAll(context.Background(), nil, 0))
}

func TestResolveAll_CanceledContext(t *testing.T) {
	s := &idStrategy{}
	r := NewResolver(nil, s)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := r.ResolveAll(ctx, make([]model.RentalUnit, 10), 2)
	require.Len(t, got, 10)
	for _, urls := range got {
		assert.NotNil(t, urls)
	}
}
