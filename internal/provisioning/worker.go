package provisioning

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironbatch/ironbatch/internal/platform/openstack"
)

// State is a provisioning worker's position in its lifecycle.
type State string

const (
	StatePending    State = "PENDING"
	StateSubmitting State = "SUBMITTING"
	StateWaiting    State = "WAITING"
	StateActive     State = "ACTIVE"
	StateFailed     State = "FAILED"
	StateTimedOut   State = "TIMED_OUT"
)

// defaultPollInterval is how often a waiting worker reads instance status.
const defaultPollInterval = 5 * time.Second

// OutcomeKind classifies the terminal result of one allocation.
type OutcomeKind int

const (
	OutcomeCreated OutcomeKind = iota
	OutcomeError
	OutcomeTimedOut
)

// String returns the human-readable name of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCreated:
		return "created"
	case OutcomeError:
		return "error"
	case OutcomeTimedOut:
		return "timed out"
	}
	return "unknown"
}

// Outcome is the terminal result of one allocation. Exactly one Outcome is
// produced per allocation, written only by its owning worker.
type Outcome struct {
	Allocation Allocation
	Kind       OutcomeKind
	InstanceID string // empty for dry runs and failed creates
	Err        error  // set when Kind is OutcomeError
}

// Provisioner drives single allocations to a terminal state. One Provisioner
// is shared by all workers of a run; its fields are read-only after
// construction.
type Provisioner struct {
	Client          openstack.ControlPlane
	ImageID         string
	NetworkID       string
	DeployInterface string
	SSHKey          string
	Timeout         time.Duration
	DryRun          bool

	// PollInterval overrides the status poll interval; zero means the
	// 5 second default. Tests shrink it to keep poll loops fast.
	PollInterval time.Duration
}

// Provision drives one allocation through
// PENDING → SUBMITTING → WAITING → {ACTIVE, FAILED, TIMED_OUT} and returns
// its terminal outcome. All failures are contained in the outcome; Provision
// itself never aborts a sibling.
func (p *Provisioner) Provision(ctx context.Context, alloc Allocation) Outcome {
	logger := logrus.WithFields(logrus.Fields{
		"instance": alloc.Name,
		"node":     alloc.NodeID,
	})

	if p.DryRun {
		logger.WithField("state", StateActive).Info("dry run: instance creation skipped")
		return Outcome{Allocation: alloc, Kind: OutcomeCreated}
	}

	logger.WithField("state", StateSubmitting).Info("provisioning started")

	// Best effort: not every control plane allows changing the deploy
	// interface, so a failure here is logged and ignored.
	if p.DeployInterface != "" {
		if err := p.Client.SetNodeDeployInterface(ctx, alloc.NodeID, p.DeployInterface); err != nil {
			logger.WithError(err).Warn("could not set node deploy interface")
		}
	}

	id, err := p.Client.CreateInstance(ctx, openstack.CreateOpts{
		Name:      alloc.Name,
		NetworkID: p.NetworkID,
		ImageID:   p.ImageID,
		NodeID:    alloc.NodeID,
		SSHKey:    p.SSHKey,
	})
	if err != nil {
		logger.WithField("state", StateFailed).WithError(err).Error("instance creation failed")
		return Outcome{
			Allocation: alloc,
			Kind:       OutcomeError,
			Err:        &ControlPlaneError{Op: "create instance", Err: err},
		}
	}

	logger = logger.WithField("id", id)
	logger.WithField("state", StateWaiting).Info("instance created, waiting for it to become active")

	return p.wait(ctx, logger, alloc, id)
}

// wait polls instance status on a fixed interval until a terminal status or
// the deadline passes. The deadline is computed once at entry. A timed-out
// instance is not cleaned up remotely; it may still finish provisioning on
// the control-plane side after the worker reports TIMED_OUT.
func (p *Provisioner) wait(ctx context.Context, logger *logrus.Entry, alloc Allocation, id string) Outcome {
	interval := p.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	deadline := time.Now().Add(p.Timeout)

	for {
		if time.Now().After(deadline) {
			logger.WithField("state", StateTimedOut).Error("timed out waiting for instance to become active")
			return Outcome{Allocation: alloc, Kind: OutcomeTimedOut, InstanceID: id}
		}

		status, err := p.Client.GetInstanceStatus(ctx, id)
		if err != nil {
			logger.WithField("state", StateFailed).WithError(err).Error("instance status read failed")
			return Outcome{
				Allocation: alloc,
				Kind:       OutcomeError,
				InstanceID: id,
				Err:        &ControlPlaneError{Op: "get instance status", Err: err},
			}
		}

		switch status {
		case openstack.StatusActive:
			logger.WithField("state", StateActive).Info("instance provisioned")
			return Outcome{Allocation: alloc, Kind: OutcomeCreated, InstanceID: id}
		case openstack.StatusError:
			logger.WithField("state", StateFailed).Error("instance entered error state")
			return Outcome{
				Allocation: alloc,
				Kind:       OutcomeError,
				InstanceID: id,
				Err:        errors.New("instance entered error state"),
			}
		}

		select {
		case <-ctx.Done():
			return Outcome{Allocation: alloc, Kind: OutcomeError, InstanceID: id, Err: ctx.Err()}
		case <-time.After(interval):
		}
	}
}
