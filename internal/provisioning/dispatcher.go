package provisioning

import (
	"context"
	"fmt"
)

// Dispatch runs one provisioning worker per allocation with at most
// parallelism workers in flight. The window slides: as a worker finishes,
// the next unstarted allocation begins. Worker failures never cancel or
// block siblings; every allocation runs to its own terminal state.
//
// The returned slice is ordered by allocation index and always contains
// exactly one outcome per allocation.
func Dispatch(ctx context.Context, p *Provisioner, allocations []Allocation, parallelism int) ([]Outcome, error) {
	if parallelism < 1 {
		return nil, &InvalidRequestError{Reason: fmt.Sprintf("parallelism must be at least 1, got %d", parallelism)}
	}

	sem := make(chan struct{}, parallelism)
	resultChan := make(chan Outcome, len(allocations))

	for _, alloc := range allocations {
		alloc := alloc
		go func() {
			sem <- struct{}{}
			defer func() { <-sem }()
			resultChan <- p.Provision(ctx, alloc)
		}()
	}

	outcomes := make([]Outcome, len(allocations))
	for i := 0; i < len(allocations); i++ {
		res := <-resultChan
		outcomes[res.Allocation.Index-1] = res
	}
	return outcomes, nil
}
