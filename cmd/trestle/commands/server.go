package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/imamik/trestle/cmd/trestle/handlers"
)

// Server returns the parent command for bare-metal server operations.
func Server() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage servers on reserved nodes",
	}

	cmd.AddCommand(serverCreate())
	cmd.AddCommand(serverDelete())
	cmd.AddCommand(serverExec())

	return cmd
}

func serverExec() *cobra.Command {
	var (
		configPath string
		keyPath    string
	)

	cmd := &cobra.Command{
		Use:   "exec SERVER COMMAND...",
		Short: "Run a command on a server over SSH",
		Long: `Run a command on a server over SSH via its floating IP.

Example:
  trestle server exec my-server --key my-key.pem -- uname -a`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.ServerExec(cmd.Context(), configPath, args[0], keyPath, strings.Join(args[1:], " "))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")
	cmd.Flags().StringVar(&keyPath, "key", "", "Path to the SSH private key (required)")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func serverCreate() *cobra.Command {
	var (
		configPath string
		in         handlers.ServerCreateInput
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Boot a server on a reserved node",
		Long: `Boot a server on a node held by an ACTIVE lease.

The lease's node reservation is threaded into the scheduler so placement
lands on the reserved hardware. Image and flavor accept either an ID or
a name.

Examples:
  # Boot a server on the lease's reserved node
  trestle server create my-server --lease my-lease --image CC-Ubuntu22.04

  # Boot and attach a floating IP once ACTIVE
  trestle server create my-server --lease my-lease --image CC-Ubuntu22.04 \
    --floating-ip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			return handlers.ServerCreate(cmd.Context(), configPath, in)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")
	cmd.Flags().StringVar(&in.Lease, "lease", "", "Lease whose node reservation hosts the server (required)")
	cmd.Flags().StringVar(&in.Image, "image", "", "Image ID or name (required)")
	cmd.Flags().StringVar(&in.Flavor, "flavor", "baremetal", "Flavor ID or name")
	cmd.Flags().StringVar(&in.KeyName, "key", "", "Registered keypair name for SSH access")
	cmd.Flags().StringVar(&in.Network, "network", "", "Network ID or name for the primary NIC")
	cmd.Flags().IntVar(&in.Count, "count", 1, "Number of servers to boot")
	cmd.Flags().BoolVar(&in.FloatingIP, "floating-ip", false, "Associate a floating IP once the server is ACTIVE")
	_ = cmd.MarkFlagRequired("lease")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func serverDelete() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete SERVER",
		Short: "Delete a server by ID or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.ServerDelete(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}
