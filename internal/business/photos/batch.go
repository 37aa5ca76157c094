package photos

import (
	"context"
	"sync"

	"github.com/leasedesk/rental-portal/pkg/model"
)

const defaultWorkers = 8

// ResolveAll resolves photos for many units with bounded concurrency.
// The result is index-aligned with units. Units not reached before ctx is
// canceled get an empty list.
func (r *Resolver) ResolveAll(ctx context.Context, units []model.RentalUnit, workers int) [][]string {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(units) {
		workers = len(units)
	}

	out := make([][]string, len(units))
	jobs := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			out[i] = r.Resolve(ctx, units[i])
		}
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker()
	}

feed:
	for i := range units {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	for i := range out {
		if out[i] == nil {
			out[i] = []string{}
		}
	}
	return out
}
