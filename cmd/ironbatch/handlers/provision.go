// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironbatch/ironbatch/internal/config"
	"github.com/ironbatch/ironbatch/internal/platform/openstack"
	"github.com/ironbatch/ironbatch/internal/provisioning"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newControlPlane creates the control-plane client after credentials
	// bootstrap.
	newControlPlane = func() (openstack.ControlPlane, error) {
		return openstack.NewRealClient()
	}

	// loadConfigFile loads run defaults from file (for testing injection).
	loadConfigFile = config.LoadFile

	// loadOpenRC exports openrc credentials (for testing injection).
	loadOpenRC = config.LoadOpenRC

	// stdout is where summaries are printed (for testing injection).
	stdout io.Writer = os.Stdout

	// pollInterval overrides the worker status poll interval; zero keeps
	// the production default. Tests shrink it.
	pollInterval time.Duration
)

// ProvisionOptions carries the CLI input for the provision command.
type ProvisionOptions struct {
	ConfigPath string
	OpenRCPath string
	Overrides  config.Overrides
}

// Provision runs one batch provisioning run end to end:
//  1. Builds the immutable ProvisionRequest from config file, environment
//     and flags, and validates it.
//  2. Bootstraps credentials from the openrc file when one is given.
//  3. Resolves the image and network references.
//  4. Selects allocatable nodes and assigns one per requested slot.
//  5. Dispatches provisioning workers under the parallelism cap.
//  6. Prints the run summary and fails when any instance did not come up.
//
// Pre-flight failures (bad input, resolution, capacity) abort before any
// instance is touched. Per-instance failures only affect the aggregate
// result.
func Provision(ctx context.Context, opts ProvisionOptions) error {
	var file *config.FileConfig
	if opts.ConfigPath != "" {
		var err error
		file, err = loadConfigFile(opts.ConfigPath)
		if err != nil {
			return err
		}
	}

	req := config.Build(file, opts.Overrides)
	if err := req.Validate(); err != nil {
		return err
	}

	if opts.OpenRCPath != "" {
		if err := loadOpenRC(opts.OpenRCPath); err != nil {
			return err
		}
	}

	client, err := newControlPlane()
	if err != nil {
		if openstack.IsUnauthorized(err) {
			return fmt.Errorf("authentication failed, check the OS_* environment or pass --openrc: %w", err)
		}
		return fmt.Errorf("failed to create control-plane client: %w", err)
	}

	imageID, err := client.ResolveImage(ctx, req.Image)
	if err != nil {
		return resolutionError("image", req.Image, err)
	}
	networkID, err := client.ResolveNetwork(ctx, req.Network)
	if err != nil {
		return resolutionError("network", req.Network, err)
	}

	pool, err := provisioning.NewSelector(client).SelectNodes(ctx, req.ResourceClass)
	if err != nil {
		return err
	}

	allocations, err := provisioning.Allocate(pool, req.Count, req.InstancePrefix)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"count":       req.Count,
		"available":   len(pool),
		"parallelism": req.Parallelism,
		"dry_run":     req.DryRun,
	}).Info("starting provisioning run")

	provisioner := &provisioning.Provisioner{
		Client:          client,
		ImageID:         imageID,
		NetworkID:       networkID,
		DeployInterface: req.DeployInterface,
		SSHKey:          req.SSHKey,
		Timeout:         req.Timeout(),
		DryRun:          req.DryRun,
		PollInterval:    pollInterval,
	}

	outcomes, err := provisioning.Dispatch(ctx, provisioner, allocations, req.Parallelism)
	if err != nil {
		return err
	}

	result := provisioning.Aggregate(outcomes)
	fmt.Fprint(stdout, renderRunSummary(result))

	if !result.Succeeded() {
		return fmt.Errorf("provisioning finished with failures: %d created, %d failed, %d timed out",
			result.Created, result.Failed, result.TimedOut)
	}
	return nil
}

// resolutionError wraps a failed image or network lookup, logging a hint for
// the failure modes an operator can act on.
func resolutionError(kind, ref string, err error) error {
	switch {
	case openstack.IsAmbiguous(err):
		logrus.Warnf("multiple %ss match %q, pass an ID instead of a name", kind, ref)
	case openstack.IsNotFound(err):
		logrus.Warnf("no %s named %q exists in this project", kind, ref)
	}
	return &provisioning.ResolutionError{Kind: kind, Ref: ref, Err: err}
}
