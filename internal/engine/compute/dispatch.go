// Package compute runs per-invocation kernels across goroutine workers,
// mirroring a compute dispatch: N logical invocations, scheduled in
// workgroups, with no synchronization between invocations.
package compute

import (
	"context"
	"runtime"
	"sync"
)

// DefaultWorkgroup is the number of invocations scheduled as one unit.
const DefaultWorkgroup = 64

// Kernel is a single invocation. It receives the invocation index and must
// only write state it exclusively owns for that index.
type Kernel func(i uint32)

// Dispatcher schedules kernel invocations over a worker pool.
// The zero value is usable; unset fields fall back to defaults.
type Dispatcher struct {
	Workgroup int // invocations per workgroup, default DefaultWorkgroup
	Workers   int // concurrent workers, default GOMAXPROCS
}

// NewDispatcher returns a dispatcher with default workgroup size and one
// worker per available CPU.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		Workgroup: DefaultWorkgroup,
		Workers:   runtime.GOMAXPROCS(0),
	}
}

// Workgroups returns how many workgroups a dispatch of n invocations needs.
func (d *Dispatcher) Workgroups(n uint32) uint32 {
	wg := uint32(d.Workgroup)
	if wg == 0 {
		wg = DefaultWorkgroup
	}
	return (n + wg - 1) / wg
}

// Dispatch runs kernel for every invocation index in [0, n) and blocks until
// all scheduled invocations finish. Invocations run in no particular order.
// Cancelling the context stops scheduling further workgroups; workgroups
// already handed to a worker run to completion. Returns the context error
// when cancellation cut the dispatch short, nil otherwise.
func (d *Dispatcher) Dispatch(ctx context.Context, n uint32, kernel Kernel) error {
	if n == 0 {
		return nil
	}

	group := uint32(d.Workgroup)
	if group == 0 {
		group = DefaultWorkgroup
	}
	workers := d.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	groups := (n + group - 1) / group
	if uint32(workers) > groups {
		workers = int(groups)
	}

	starts := make(chan uint32, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for start := range starts {
				end := start + group
				if end > n {
					end = n
				}
				for i := start; i < end; i++ {
					kernel(i)
				}
			}
		}()
	}

	var err error
feed:
	for g := uint32(0); g < groups; g++ {
		select {
		case starts <- g * group:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(starts)
	wg.Wait()

	return err
}
