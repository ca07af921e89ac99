package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/trestle/cmd/trestle/handlers"
)

// Share returns the parent command for file shares.
func Share() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Manage file shares",
	}

	cmd.AddCommand(shareCreate())
	cmd.AddCommand(shareList())
	cmd.AddCommand(shareDelete())
	cmd.AddCommand(shareResize())
	cmd.AddCommand(shareTypes())

	return cmd
}

func shareCreate() *cobra.Command {
	var (
		configPath string
		in         handlers.ShareCreateInput
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a file share",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			return handlers.ShareCreate(cmd.Context(), configPath, in)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")
	cmd.Flags().IntVar(&in.Size, "size", 1, "Share size in GiB")
	cmd.Flags().StringVar(&in.Proto, "proto", "NFS", "Share protocol")
	cmd.Flags().StringVar(&in.ShareType, "type", "", "Share type (default: chosen by the service)")

	return cmd
}

func shareList() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the project's shares",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ShareList(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}

func shareDelete() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete SHARE",
		Short: "Delete a share",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.ShareDelete(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}

func shareResize() *cobra.Command {
	var (
		configPath string
		size       int
	)

	cmd := &cobra.Command{
		Use:   "resize SHARE",
		Short: "Grow or shrink a share",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.ShareResize(cmd.Context(), configPath, args[0], size)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")
	cmd.Flags().IntVar(&size, "size", 0, "New size in GiB")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

func shareTypes() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List supported share types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ShareTypes(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}
