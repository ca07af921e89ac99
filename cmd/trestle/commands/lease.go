package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/imamik/trestle/cmd/trestle/handlers"
)

// Lease returns the parent command for lease operations.
//
// Leases reserve testbed hardware for a time window. A lease starts in
// PENDING state and becomes ACTIVE when the scheduler grants the
// reservation; servers and containers are then provisioned against it.
func Lease() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lease",
		Short: "Manage hardware reservations",
	}

	cmd.AddCommand(leaseCreate())
	cmd.AddCommand(leaseList())
	cmd.AddCommand(leaseShow())
	cmd.AddCommand(leaseDelete())
	cmd.AddCommand(leaseProlong())
	cmd.AddCommand(leaseWait())

	return cmd
}

func leaseCreate() *cobra.Command {
	var (
		configPath string
		in         handlers.LeaseCreateInput
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new lease",
		Long: `Create a new lease reserving testbed hardware.

A lease bundles one or more reservations: bare-metal nodes selected by
type, floating IPs drawn from the public network, and edge devices
selected by machine name.

Examples:
  # Reserve one compute node for a day
  trestle lease create my-lease --nodes 1 --node-type compute_haswell

  # Reserve two nodes plus a floating IP for six hours
  trestle lease create my-lease --nodes 2 --node-type compute_skylake \
    --floating-ips 1 --duration 6h

  # Reserve an edge device
  trestle lease create edge-lease --devices 1 --machine-name raspberrypi4-64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			return handlers.LeaseCreate(cmd.Context(), configPath, in)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")
	cmd.Flags().IntVar(&in.Nodes, "nodes", 0, "Number of bare-metal nodes to reserve")
	cmd.Flags().StringVar(&in.NodeType, "node-type", "", "Node type to reserve (e.g. compute_haswell)")
	cmd.Flags().IntVar(&in.Devices, "devices", 0, "Number of edge devices to reserve")
	cmd.Flags().StringVar(&in.MachineName, "machine-name", "", "Device machine name to reserve (e.g. raspberrypi4-64)")
	cmd.Flags().IntVar(&in.FloatingIPs, "floating-ips", 0, "Number of floating IPs to reserve")
	cmd.Flags().DurationVar(&in.Duration, "duration", 24*time.Hour, "Lease duration")
	cmd.Flags().BoolVar(&in.Idempotent, "idempotent", false, "Adopt an existing lease with the same name instead of creating")
	cmd.Flags().BoolVar(&in.Retry, "retry", false, "Retry creation on error, deleting failed attempts")
	cmd.Flags().BoolVar(&in.Wait, "wait", false, "Block until the lease is ACTIVE")

	return cmd
}

func leaseList() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leases in the project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.LeaseList(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}

func leaseShow() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show LEASE",
		Short: "Show a lease and its reservations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.LeaseShow(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}

func leaseDelete() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete LEASE",
		Short: "Delete a lease, releasing its hardware",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.LeaseDelete(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}

func leaseProlong() *cobra.Command {
	var (
		configPath string
		by         time.Duration
	)

	cmd := &cobra.Command{
		Use:   "prolong LEASE",
		Short: "Extend a lease's end date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.LeaseProlong(cmd.Context(), configPath, args[0], by)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")
	cmd.Flags().DurationVar(&by, "by", time.Hour, "How much to extend the lease by")

	return cmd
}

func leaseWait() *cobra.Command {
	var (
		configPath string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "wait LEASE",
		Short: "Block until a lease becomes ACTIVE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.LeaseWait(cmd.Context(), configPath, args[0], timeout)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Maximum time to wait (default: configured lease wait timeout)")

	return cmd
}
