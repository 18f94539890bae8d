package provisioning

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironbatch/ironbatch/internal/platform/openstack"
)

// testProvisioner returns a provisioner with fast polling for tests.
func testProvisioner(client *fakeClient) *Provisioner {
	return &Provisioner{
		Client:          client,
		ImageID:         "image-id",
		NetworkID:       "network-id",
		DeployInterface: "direct",
		Timeout:         time.Second,
		PollInterval:    time.Millisecond,
	}
}

func TestProvision_ReadyOnFirstPoll(t *testing.T) {
	client := &fakeClient{}
	alloc := Allocation{Index: 1, Name: "bm-1", NodeID: "n1"}

	outcome := testProvisioner(client).Provision(context.Background(), alloc)

	assert.Equal(t, OutcomeCreated, outcome.Kind)
	assert.Equal(t, "instance-bm-1", outcome.InstanceID)
	assert.Equal(t, alloc, outcome.Allocation)

	created := client.createdOpts()
	require.Len(t, created, 1)
	assert.Equal(t, openstack.CreateOpts{
		Name:      "bm-1",
		NetworkID: "network-id",
		ImageID:   "image-id",
		NodeID:    "n1",
	}, created[0])
}

func TestProvision_BecomesReadyAfterBuilding(t *testing.T) {
	var polls atomic.Int32
	client := &fakeClient{
		GetInstanceStatusFunc: func(_ context.Context, _ string) (string, error) {
			if polls.Add(1) < 3 {
				return "BUILD", nil
			}
			return openstack.StatusActive, nil
		},
	}

	outcome := testProvisioner(client).Provision(context.Background(), Allocation{Index: 1, Name: "bm-1", NodeID: "n1"})

	assert.Equal(t, OutcomeCreated, outcome.Kind)
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestProvision_CreateFailsWithoutRetry(t *testing.T) {
	createErr := errors.New("no valid host was found")
	client := &fakeClient{
		CreateInstanceFunc: func(_ context.Context, _ openstack.CreateOpts) (string, error) {
			return "", createErr
		},
	}

	outcome := testProvisioner(client).Provision(context.Background(), Allocation{Index: 1, Name: "bm-1", NodeID: "n1"})

	assert.Equal(t, OutcomeError, outcome.Kind)
	assert.Empty(t, outcome.InstanceID)
	assert.ErrorIs(t, outcome.Err, createErr)
	assert.Equal(t, int32(1), client.createCalls.Load(), "create must not be retried")
	assert.Zero(t, client.statusCalls.Load(), "no polling after a failed create")
}

func TestProvision_InstanceEntersErrorState(t *testing.T) {
	client := &fakeClient{
		GetInstanceStatusFunc: func(_ context.Context, _ string) (string, error) {
			return openstack.StatusError, nil
		},
	}

	outcome := testProvisioner(client).Provision(context.Background(), Allocation{Index: 1, Name: "bm-1", NodeID: "n1"})

	assert.Equal(t, OutcomeError, outcome.Kind)
	assert.Equal(t, "instance-bm-1", outcome.InstanceID)
	assert.EqualError(t, outcome.Err, "instance entered error state")
}

func TestProvision_StatusReadFailure(t *testing.T) {
	statusErr := errors.New("compute API returned 500")
	client := &fakeClient{
		GetInstanceStatusFunc: func(_ context.Context, _ string) (string, error) {
			return "", statusErr
		},
	}

	outcome := testProvisioner(client).Provision(context.Background(), Allocation{Index: 1, Name: "bm-1", NodeID: "n1"})

	assert.Equal(t, OutcomeError, outcome.Kind)
	var cpErr *ControlPlaneError
	require.ErrorAs(t, outcome.Err, &cpErr)
	assert.Equal(t, "get instance status", cpErr.Op)
}

func TestProvision_TimesOutWhenNeverReady(t *testing.T) {
	client := &fakeClient{
		GetInstanceStatusFunc: func(_ context.Context, _ string) (string, error) {
			return "BUILD", nil
		},
	}
	p := testProvisioner(client)
	p.Timeout = 20 * time.Millisecond

	start := time.Now()
	outcome := p.Provision(context.Background(), Allocation{Index: 1, Name: "bm-1", NodeID: "n1"})

	assert.Equal(t, OutcomeTimedOut, outcome.Kind)
	assert.Equal(t, "instance-bm-1", outcome.InstanceID)
	assert.Less(t, time.Since(start), time.Second, "worker must not block past its deadline")
}

func TestProvision_DeployInterfaceFailureIsIgnored(t *testing.T) {
	client := &fakeClient{
		SetNodeDeployInterfaceFunc: func(_ context.Context, _, _ string) error {
			return errors.New("node is locked")
		},
	}

	outcome := testProvisioner(client).Provision(context.Background(), Allocation{Index: 1, Name: "bm-1", NodeID: "n1"})

	assert.Equal(t, OutcomeCreated, outcome.Kind, "deploy interface errors are best-effort")
	assert.Equal(t, int32(1), client.createCalls.Load())
}

func TestProvision_DeployInterfaceSkippedWhenEmpty(t *testing.T) {
	called := false
	client := &fakeClient{
		SetNodeDeployInterfaceFunc: func(_ context.Context, _, _ string) error {
			called = true
			return nil
		},
	}
	p := testProvisioner(client)
	p.DeployInterface = ""

	p.Provision(context.Background(), Allocation{Index: 1, Name: "bm-1", NodeID: "n1"})

	assert.False(t, called)
}

func TestProvision_DryRun(t *testing.T) {
	ifaceSet := false
	client := &fakeClient{
		SetNodeDeployInterfaceFunc: func(_ context.Context, _, _ string) error {
			ifaceSet = true
			return nil
		},
	}
	p := testProvisioner(client)
	p.DryRun = true

	outcome := p.Provision(context.Background(), Allocation{Index: 1, Name: "bm-1", NodeID: "n1"})

	assert.Equal(t, OutcomeCreated, outcome.Kind)
	assert.Empty(t, outcome.InstanceID, "dry run carries no real instance id")
	assert.Zero(t, client.createCalls.Load(), "dry run must not create")
	assert.Zero(t, client.statusCalls.Load(), "dry run must not poll")
	assert.False(t, ifaceSet, "dry run must not mutate nodes")
}

func TestProvision_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeClient{
		GetInstanceStatusFunc: func(_ context.Context, _ string) (string, error) {
			cancel()
			return "BUILD", nil
		},
	}
	p := testProvisioner(client)
	p.Timeout = time.Minute

	outcome := p.Provision(ctx, Allocation{Index: 1, Name: "bm-1", NodeID: "n1"})

	assert.Equal(t, OutcomeError, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, context.Canceled)
}

func TestProvision_SSHKeyPassedThrough(t *testing.T) {
	client := &fakeClient{}
	p := testProvisioner(client)
	p.SSHKey = "ops-key"

	p.Provision(context.Background(), Allocation{Index: 1, Name: "bm-1", NodeID: "n1"})

	created := client.createdOpts()
	require.Len(t, created, 1)
	assert.Equal(t, "ops-key", created[0].SSHKey)
}
