package provisioning

import (
	"fmt"

	"github.com/ironbatch/ironbatch/internal/platform/openstack"
	"github.com/ironbatch/ironbatch/internal/util/naming"
)

// Allocation pairs one instance slot with the node that will host it.
// Immutable once created; a worker operates on exactly one Allocation and
// never touches another allocation's node or name.
type Allocation struct {
	Index  int    // 1-based slot index
	Name   string // derived instance name, {prefix}-{index}
	NodeID string
}

// Allocate assigns one node to each of the slots 1..count by taking the
// first count entries of the candidate pool in the order received. This is
// a deliberate first-fit policy, not a scored placement. Each node is
// consumed at most once, so the returned allocations never share a node.
func Allocate(nodes []openstack.Node, count int, prefix string) ([]Allocation, error) {
	if count < 1 {
		return nil, &InvalidRequestError{Reason: fmt.Sprintf("count must be at least 1, got %d", count)}
	}
	if count > len(nodes) {
		return nil, &InsufficientCapacityError{Requested: count, Available: len(nodes)}
	}

	allocations := make([]Allocation, 0, count)
	for i, node := range nodes[:count] {
		allocations = append(allocations, Allocation{
			Index:  i + 1,
			Name:   naming.Instance(prefix, i+1),
			NodeID: node.ID,
		})
	}
	return allocations, nil
}
