package commands

import (
	"github.com/spf13/cobra"

	"github.com/ironbatch/ironbatch/cmd/ironbatch/commands/flagutil"
	"github.com/ironbatch/ironbatch/cmd/ironbatch/handlers"
)

// Nodes returns the command that lists allocatable bare-metal nodes.
func Nodes() *cobra.Command {
	var (
		openRCPath string
		resClass   string
	)

	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List bare-metal nodes a run could allocate",
		Long: `List bare-metal nodes that are allocatable right now.

Shows nodes in the "available" provision state that are not in maintenance,
the same pool a provision run selects from.

Examples:
  # All allocatable nodes
  ironbatch nodes

  # Only one hardware profile
  ironbatch nodes --resource-class baremetal.gpu`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Nodes(cmd.Context(), handlers.NodesOptions{
				OpenRCPath:    flagutil.StringOr(openRCPath, "IRONBATCH_OPENRC"),
				ResourceClass: resClass,
			})
		},
	}

	cmd.Flags().StringVar(&openRCPath, "openrc", "", "Path to an openrc credentials file")
	cmd.Flags().StringVar(&resClass, "resource-class", "", "Restrict nodes to this resource class")

	return cmd
}
