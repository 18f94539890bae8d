// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the ironbatch CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ironbatch",
		Short: "Batch-provision bare-metal instances on OpenStack",
	}

	cmd.AddCommand(Provision())
	cmd.AddCommand(Nodes())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
