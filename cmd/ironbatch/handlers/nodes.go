package handlers

import (
	"context"
	"fmt"

	"github.com/ironbatch/ironbatch/internal/provisioning"
)

// NodesOptions carries the CLI input for the nodes command.
type NodesOptions struct {
	OpenRCPath    string
	ResourceClass string
}

// Nodes lists the bare-metal nodes a provisioning run could allocate right
// now: provision state "available", not in maintenance, optionally filtered
// by resource class. An operator preview of the same selection the provision
// command performs.
func Nodes(ctx context.Context, opts NodesOptions) error {
	if opts.OpenRCPath != "" {
		if err := loadOpenRC(opts.OpenRCPath); err != nil {
			return err
		}
	}

	client, err := newControlPlane()
	if err != nil {
		return fmt.Errorf("failed to create control-plane client: %w", err)
	}

	pool, err := provisioning.NewSelector(client).SelectNodes(ctx, opts.ResourceClass)
	if err != nil {
		return err
	}

	fmt.Fprint(stdout, renderNodeList(pool, opts.ResourceClass))
	return nil
}
