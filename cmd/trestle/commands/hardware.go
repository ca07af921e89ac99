package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/imamik/trestle/cmd/trestle/handlers"
)

// Hardware returns the parent command for hardware discovery.
func Hardware() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hardware",
		Short: "Browse the site hardware catalogue",
	}

	cmd.AddCommand(hardwareNodes())
	cmd.AddCommand(hardwareDevices())
	cmd.AddCommand(hardwareTimeslot())

	return cmd
}

func hardwareNodes() *cobra.Command {
	var (
		configPath string
		in         handlers.NodesInput
	)

	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List bare-metal nodes",
		Long: `List the site's bare-metal nodes.

Examples:
  # All nodes of one type
  trestle hardware nodes --node-type compute_haswell

  # Only nodes free for reservation right now
  trestle hardware nodes --free`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Nodes(cmd.Context(), configPath, in)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")
	cmd.Flags().StringVar(&in.NodeType, "node-type", "", "Filter by node type")
	cmd.Flags().BoolVar(&in.Free, "free", false, "Only nodes not reserved right now")

	return cmd
}

func hardwareDevices() *cobra.Command {
	var (
		configPath string
		in         handlers.DevicesInput
	)

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List edge devices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Devices(cmd.Context(), configPath, in)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")
	cmd.Flags().StringVar(&in.MachineName, "machine-name", "", "Filter by machine name")
	cmd.Flags().BoolVar(&in.Free, "free", false, "Only devices not reserved right now")

	return cmd
}

func hardwareTimeslot() *cobra.Command {
	var (
		configPath string
		minimum    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "timeslot HOST",
		Short: "Show the next free reservation window for a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Timeslot(cmd.Context(), configPath, args[0], minimum)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")
	cmd.Flags().DurationVar(&minimum, "minimum", time.Hour, "Minimum window length")

	return cmd
}
