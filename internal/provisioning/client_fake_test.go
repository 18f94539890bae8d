package provisioning

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ironbatch/ironbatch/internal/platform/openstack"
)

// fakeClient implements openstack.ControlPlane with overridable functions.
// Unset functions return benign defaults. Call counters are atomic so
// dispatcher tests can assert across concurrent workers.
type fakeClient struct {
	ResolveImageFunc           func(ctx context.Context, ref string) (string, error)
	ResolveNetworkFunc         func(ctx context.Context, ref string) (string, error)
	ListNodesFunc              func(ctx context.Context) ([]openstack.Node, error)
	SetNodeDeployInterfaceFunc func(ctx context.Context, nodeID, iface string) error
	CreateInstanceFunc         func(ctx context.Context, opts openstack.CreateOpts) (string, error)
	GetInstanceStatusFunc      func(ctx context.Context, instanceID string) (string, error)

	createCalls atomic.Int32
	statusCalls atomic.Int32

	mu      sync.Mutex
	created []openstack.CreateOpts
}

var _ openstack.ControlPlane = (*fakeClient)(nil)

func (f *fakeClient) ResolveImage(ctx context.Context, ref string) (string, error) {
	if f.ResolveImageFunc != nil {
		return f.ResolveImageFunc(ctx, ref)
	}
	return "image-id", nil
}

func (f *fakeClient) ResolveNetwork(ctx context.Context, ref string) (string, error) {
	if f.ResolveNetworkFunc != nil {
		return f.ResolveNetworkFunc(ctx, ref)
	}
	return "network-id", nil
}

func (f *fakeClient) ListNodes(ctx context.Context) ([]openstack.Node, error) {
	if f.ListNodesFunc != nil {
		return f.ListNodesFunc(ctx)
	}
	return nil, nil
}

func (f *fakeClient) SetNodeDeployInterface(ctx context.Context, nodeID, iface string) error {
	if f.SetNodeDeployInterfaceFunc != nil {
		return f.SetNodeDeployInterfaceFunc(ctx, nodeID, iface)
	}
	return nil
}

func (f *fakeClient) CreateInstance(ctx context.Context, opts openstack.CreateOpts) (string, error) {
	f.createCalls.Add(1)
	f.mu.Lock()
	f.created = append(f.created, opts)
	f.mu.Unlock()
	if f.CreateInstanceFunc != nil {
		return f.CreateInstanceFunc(ctx, opts)
	}
	return "instance-" + opts.Name, nil
}

func (f *fakeClient) GetInstanceStatus(ctx context.Context, instanceID string) (string, error) {
	f.statusCalls.Add(1)
	if f.GetInstanceStatusFunc != nil {
		return f.GetInstanceStatusFunc(ctx, instanceID)
	}
	return openstack.StatusActive, nil
}

// createdOpts returns a snapshot of every CreateInstance call seen so far.
func (f *fakeClient) createdOpts() []openstack.CreateOpts {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]openstack.CreateOpts, len(f.created))
	copy(out, f.created)
	return out
}

// availableNode builds an allocatable node for tests.
func availableNode(id string) openstack.Node {
	return openstack.Node{
		ID:             id,
		Name:           "node-" + id,
		ProvisionState: openstack.ProvisionStateAvailable,
		ResourceClass:  "baremetal.general",
	}
}
