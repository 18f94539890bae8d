package provisioning

import (
	"context"

	"github.com/ironbatch/ironbatch/internal/platform/openstack"
)

// Selector queries the control plane for nodes that can receive an instance.
type Selector struct {
	client openstack.ControlPlane
}

// NewSelector returns a Selector backed by the given control-plane client.
func NewSelector(client openstack.ControlPlane) *Selector {
	return &Selector{client: client}
}

// SelectNodes returns the nodes in the "available" provision state that are
// not in maintenance. A non-empty resourceClass restricts the pool to nodes
// whose resource class matches it exactly (case-sensitive). Candidate order
// is whatever the control plane reported; it carries no meaning beyond
// "first available wins" and is not stable across calls.
func (s *Selector) SelectNodes(ctx context.Context, resourceClass string) ([]openstack.Node, error) {
	all, err := s.client.ListNodes(ctx)
	if err != nil {
		return nil, &ControlPlaneError{Op: "list nodes", Err: err}
	}

	var pool []openstack.Node
	for _, n := range all {
		if n.ProvisionState != openstack.ProvisionStateAvailable || n.Maintenance {
			continue
		}
		if resourceClass != "" && n.ResourceClass != resourceClass {
			continue
		}
		pool = append(pool, n)
	}
	return pool, nil
}
