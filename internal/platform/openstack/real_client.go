package openstack

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud"
	"github.com/gophercloud/gophercloud/openstack/baremetal/v1/nodes"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/extensions/keypairs"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/extensions/schedulerhints"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"
	"github.com/gophercloud/utils/openstack/clientconfig"
	imageutils "github.com/gophercloud/utils/openstack/imageservice/v2/images"
	networkutils "github.com/gophercloud/utils/openstack/networking/v2/networks"
)

// baremetalMicroversion is the ironic API microversion requested for node
// operations. 1.31 is the first version that exposes deploy_interface.
const baremetalMicroversion = "1.31"

// instanceFlavor is the compute flavor used for every bare-metal instance.
const instanceFlavor = "baremetal"

// RealClient talks to a live OpenStack control plane. Service clients are
// safe for concurrent use, so one RealClient serves all workers.
type RealClient struct {
	compute   *gophercloud.ServiceClient
	image     *gophercloud.ServiceClient
	network   *gophercloud.ServiceClient
	baremetal *gophercloud.ServiceClient
}

var _ ControlPlane = (*RealClient)(nil)

// NewRealClient authenticates from the OS_* environment and builds the
// per-service API clients.
func NewRealClient() (*RealClient, error) {
	compute, err := clientconfig.NewServiceClient("compute", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create compute client: %w", err)
	}
	image, err := clientconfig.NewServiceClient("image", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create image client: %w", err)
	}
	network, err := clientconfig.NewServiceClient("network", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create network client: %w", err)
	}
	baremetal, err := clientconfig.NewServiceClient("baremetal", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create baremetal client: %w", err)
	}
	baremetal.Microversion = baremetalMicroversion

	return &RealClient{
		compute:   compute,
		image:     image,
		network:   network,
		baremetal: baremetal,
	}, nil
}

// ResolveImage resolves an image name or ID to the image ID.
func (c *RealClient) ResolveImage(_ context.Context, ref string) (string, error) {
	id, err := imageutils.IDFromName(c.image, ref)
	if err != nil {
		return "", fmt.Errorf("failed to resolve image %q: %w", ref, err)
	}
	return id, nil
}

// ResolveNetwork resolves a network name or ID to the network ID.
func (c *RealClient) ResolveNetwork(_ context.Context, ref string) (string, error) {
	id, err := networkutils.IDFromName(c.network, ref)
	if err != nil {
		return "", fmt.Errorf("failed to resolve network %q: %w", ref, err)
	}
	return id, nil
}

// ListNodes returns all bare-metal nodes with their provisioning details.
func (c *RealClient) ListNodes(_ context.Context) ([]Node, error) {
	pages, err := nodes.ListDetail(c.baremetal, nodes.ListOpts{}).AllPages()
	if err != nil {
		return nil, fmt.Errorf("failed to list bare-metal nodes: %w", err)
	}
	raw, err := nodes.ExtractNodes(pages)
	if err != nil {
		return nil, fmt.Errorf("failed to extract bare-metal nodes: %w", err)
	}

	out := make([]Node, 0, len(raw))
	for _, n := range raw {
		out = append(out, Node{
			ID:             n.UUID,
			Name:           n.Name,
			ProvisionState: n.ProvisionState,
			Maintenance:    n.Maintenance,
			ResourceClass:  n.ResourceClass,
		})
	}
	return out, nil
}

// SetNodeDeployInterface patches the deploy_interface field of a node.
func (c *RealClient) SetNodeDeployInterface(_ context.Context, nodeID, iface string) error {
	_, err := nodes.Update(c.baremetal, nodeID, nodes.UpdateOpts{
		nodes.UpdateOperation{
			Op:    nodes.ReplaceOp,
			Path:  "/deploy_interface",
			Value: iface,
		},
	}).Extract()
	if err != nil {
		return fmt.Errorf("failed to set deploy interface on node %s: %w", nodeID, err)
	}
	return nil
}

// CreateInstance submits the instance-create call. The compute scheduler is
// pinned to the allocated node through a JsonFilter query hint, which is how
// nova expresses "this instance goes on that hypervisor".
func (c *RealClient) CreateInstance(_ context.Context, opts CreateOpts) (string, error) {
	var createOpts servers.CreateOptsBuilder = &servers.CreateOpts{
		Name:          opts.Name,
		FlavorName:    instanceFlavor,
		ImageRef:      opts.ImageID,
		Networks:      []servers.Network{{UUID: opts.NetworkID}},
		ServiceClient: c.compute,
	}

	if opts.SSHKey != "" {
		createOpts = &keypairs.CreateOptsExt{
			CreateOptsBuilder: createOpts,
			KeyName:           opts.SSHKey,
		}
	}

	createOpts = &schedulerhints.CreateOptsExt{
		CreateOptsBuilder: createOpts,
		SchedulerHints: schedulerhints.SchedulerHints{
			Query: []interface{}{"=", "$hypervisor_hostname", opts.NodeID},
		},
	}

	server, err := servers.Create(c.compute, createOpts).Extract()
	if err != nil {
		return "", fmt.Errorf("failed to create instance %s: %w", opts.Name, err)
	}
	return server.ID, nil
}

// GetInstanceStatus reads the current status of an instance.
func (c *RealClient) GetInstanceStatus(_ context.Context, instanceID string) (string, error) {
	server, err := servers.Get(c.compute, instanceID).Extract()
	if err != nil {
		return "", fmt.Errorf("failed to get instance %s: %w", instanceID, err)
	}
	return server.Status, nil
}
