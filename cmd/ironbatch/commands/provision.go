package commands

import (
	"github.com/spf13/cobra"

	"github.com/ironbatch/ironbatch/cmd/ironbatch/commands/flagutil"
	"github.com/ironbatch/ironbatch/cmd/ironbatch/handlers"
	"github.com/ironbatch/ironbatch/internal/config"
)

// Provision returns the command that runs one batch provisioning run.
//
// Every flag has an IRONBATCH_* environment fallback with the same semantic
// name (for example --resource-class and IRONBATCH_RESOURCE_CLASS). Explicit
// flags win over environment, environment wins over the config file, and the
// file wins over built-in defaults.
func Provision() *cobra.Command {
	var (
		configPath string
		openRCPath string
		count      int
		image      string
		network    string
		resClass   string
		iface      string
		sshKey     string
		prefix     string
		timeout    int
		parallel   int
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision a batch of bare-metal instances",
		Long: `Provision a batch of bare-metal instances in one run.

Selects bare-metal nodes in the "available" provision state, assigns one
node per requested instance, creates the instances in parallel up to the
parallelism limit, and waits for each to become active or fail.

Credentials come from the OS_* environment, or from an openrc file passed
with --openrc.

Examples:
  # Provision 10 instances of an image on a network
  ironbatch provision --count 10 --image ubuntu-22.04 --network provisioning-net

  # Restrict placement to one hardware profile, limit concurrency
  ironbatch provision --count 4 --image ubuntu-22.04 --network provisioning-net \
    --resource-class baremetal.gpu --parallelism 2

  # Preview the run without creating anything
  ironbatch provision --count 10 --image ubuntu-22.04 --network provisioning-net --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			opts := handlers.ProvisionOptions{
				ConfigPath: configPath,
				OpenRCPath: flagutil.StringOr(openRCPath, "IRONBATCH_OPENRC"),
				Overrides: config.Overrides{
					Count:           flagutil.IntIfChanged(flags, "count", count),
					Image:           flagutil.StringIfChanged(flags, "image", image),
					Network:         flagutil.StringIfChanged(flags, "network", network),
					ResourceClass:   flagutil.StringIfChanged(flags, "resource-class", resClass),
					DeployInterface: flagutil.StringIfChanged(flags, "deploy-interface", iface),
					SSHKey:          flagutil.StringIfChanged(flags, "ssh-key", sshKey),
					InstancePrefix:  flagutil.StringIfChanged(flags, "instance-prefix", prefix),
					TimeoutSeconds:  flagutil.IntIfChanged(flags, "timeout-seconds", timeout),
					Parallelism:     flagutil.IntIfChanged(flags, "parallelism", parallel),
					DryRun:          flagutil.BoolIfChanged(flags, "dry-run", dryRun),
				},
			}
			return handlers.Provision(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML defaults file")
	cmd.Flags().StringVar(&openRCPath, "openrc", "", "Path to an openrc credentials file")
	cmd.Flags().IntVar(&count, "count", 0, "Number of instances to provision")
	cmd.Flags().StringVar(&image, "image", "", "Image name or ID")
	cmd.Flags().StringVar(&network, "network", "", "Network name or ID to attach instances to")
	cmd.Flags().StringVar(&resClass, "resource-class", "", "Restrict nodes to this resource class")
	cmd.Flags().StringVar(&iface, "deploy-interface", config.DefaultDeployInterface, "Node deploy interface to set before creating")
	cmd.Flags().StringVar(&sshKey, "ssh-key", "", "Name of the SSH keypair to inject")
	cmd.Flags().StringVar(&prefix, "instance-prefix", config.DefaultInstancePrefix, "Instance name prefix")
	cmd.Flags().IntVar(&timeout, "timeout-seconds", config.DefaultTimeoutSeconds, "Per-instance readiness timeout in seconds")
	cmd.Flags().IntVar(&parallel, "parallelism", config.DefaultParallelism, "Maximum concurrent provisioning workers")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Select and allocate nodes but create nothing")

	return cmd
}
