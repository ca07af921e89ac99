package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/trestle/cmd/trestle/handlers"
)

// Network returns the parent command for isolated networks.
func Network() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Manage isolated experiment networks",
	}

	cmd.AddCommand(networkCreate())
	cmd.AddCommand(networkList())
	cmd.AddCommand(networkDelete())

	return cmd
}

func networkCreate() *cobra.Command {
	var (
		configPath string
		in         handlers.NetworkCreateInput
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an isolated network",
		Long: `Create an isolated network, optionally with a subnet and a router
uplinked to the site's public network.

Examples:
  # A bare network on the default provider segment
  trestle network create exp-net --physical-network physnet1

  # A routed network with its own subnet
  trestle network create exp-net --cidr 10.42.0.0/24 --router`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			return handlers.NetworkCreate(cmd.Context(), configPath, in)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Network description (stitching metadata)")
	cmd.Flags().StringVar(&in.PhysicalNetwork, "physical-network", "", "Provider segment to bind as a VLAN network")
	cmd.Flags().StringVar(&in.CIDR, "cidr", "", "IPv4 CIDR for the network's subnet")
	cmd.Flags().StringVar(&in.Gateway, "gateway", "", "Gateway IP for the subnet (default: chosen by the service)")
	cmd.Flags().BoolVar(&in.Router, "router", false, "Uplink the subnet to the public network (requires --cidr)")

	return cmd
}

func networkList() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List networks visible to the project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.NetworkList(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}

func networkDelete() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete NETWORK",
		Short: "Delete a network with its subnets and router",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.NetworkDelete(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}
