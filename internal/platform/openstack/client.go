package openstack

import "context"

// Instance status values reported by the compute API.
const (
	StatusActive = "ACTIVE"
	StatusError  = "ERROR"
)

// ProvisionStateAvailable is the ironic provision state of a node that can
// receive an instance.
const ProvisionStateAvailable = "available"

// Node is a bare-metal node as reported by the baremetal API.
type Node struct {
	ID             string
	Name           string
	ProvisionState string
	Maintenance    bool
	ResourceClass  string
}

// CreateOpts holds all parameters for creating one bare-metal instance.
type CreateOpts struct {
	Name      string
	NetworkID string
	ImageID   string
	NodeID    string
	SSHKey    string
}

// ControlPlane defines the control-plane operations the provisioning core
// requires. Implementations must be safe for concurrent use; the dispatcher
// shares one client across all workers.
type ControlPlane interface {
	// ResolveImage resolves a human-readable image reference to its ID.
	ResolveImage(ctx context.Context, ref string) (string, error)

	// ResolveNetwork resolves a human-readable network reference to its ID.
	ResolveNetwork(ctx context.Context, ref string) (string, error)

	// ListNodes returns all bare-metal nodes known to the control plane,
	// in whatever order it reports them.
	ListNodes(ctx context.Context) ([]Node, error)

	// SetNodeDeployInterface sets the deploy interface on a node. Callers
	// treat failures as best-effort; not every control plane allows the
	// setting.
	SetNodeDeployInterface(ctx context.Context, nodeID, iface string) error

	// CreateInstance submits an instance-create call bound to the given
	// node and returns the new instance ID.
	CreateInstance(ctx context.Context, opts CreateOpts) (string, error)

	// GetInstanceStatus returns the current status string of an instance.
	GetInstanceStatus(ctx context.Context, instanceID string) (string, error)
}
