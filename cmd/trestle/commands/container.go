package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/imamik/trestle/cmd/trestle/handlers"
)

// Container returns the parent command for edge container operations.
func Container() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "container",
		Short: "Manage containers on reserved edge devices",
	}

	cmd.AddCommand(containerCreate())
	cmd.AddCommand(containerDelete())
	cmd.AddCommand(containerExec())

	return cmd
}

func containerCreate() *cobra.Command {
	var (
		configPath string
		env        []string
		in         handlers.ContainerCreateInput
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Run a container on a reserved edge device",
		Long: `Run a container on a device held by an ACTIVE lease.

The container is created against the lease's device reservation, waits
until the runtime reports it Created, then starts it and waits for
Running.

Examples:
  # Run an nginx container on the reserved device
  trestle container create web --lease edge-lease --image nginx:alpine \
    --port 80/tcp

  # Run a one-off workload with environment
  trestle container create job --lease edge-lease --image python:3.12 \
    --env MODE=batch -- python /work/run.py`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			in.Command = args[1:]
			in.Environment = parseEnv(env)
			return handlers.ContainerCreate(cmd.Context(), configPath, in)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")
	cmd.Flags().StringVar(&in.Lease, "lease", "", "Lease whose device reservation hosts the container (required)")
	cmd.Flags().StringVar(&in.Image, "image", "", "Container image reference (required)")
	cmd.Flags().StringSliceVar(&in.ExposedPorts, "port", nil, "Exposed port spec, e.g. 8080/tcp (repeatable)")
	cmd.Flags().StringSliceVar(&env, "env", nil, "Environment variable KEY=VALUE (repeatable)")
	cmd.Flags().StringVar(&in.Runtime, "runtime", "", "Container runtime override")
	_ = cmd.MarkFlagRequired("lease")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func containerDelete() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete CONTAINER",
		Short: "Stop and delete a container by UUID or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.ContainerDelete(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}

func containerExec() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "exec CONTAINER COMMAND...",
		Short: "Run a command inside a container",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.ContainerExec(cmd.Context(), configPath, args[0], strings.Join(args[1:], " "))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}

func parseEnv(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		env[key] = value
	}
	return env
}
