package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/trestle/cmd/trestle/handlers"
)

// Storage returns the parent command for the site object store.
func Storage() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Move data through the site object store",
	}

	cmd.AddCommand(storageList())
	cmd.AddCommand(storageUpload())
	cmd.AddCommand(storageDownload())

	return cmd
}

func storageList() *cobra.Command {
	var (
		configPath string
		prefix     string
	)

	cmd := &cobra.Command{
		Use:   "list BUCKET",
		Short: "List objects in a bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.StorageList(cmd.Context(), configPath, args[0], prefix)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Only objects with this key prefix")

	return cmd
}

func storageUpload() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "upload BUCKET FILE [KEY]",
		Short: "Upload a local file; creates the bucket if needed",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 3 {
				key = args[2]
			}
			return handlers.StorageUpload(cmd.Context(), configPath, args[0], args[1], key)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}

func storageDownload() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "download BUCKET KEY [FILE]",
		Short: "Download an object to a local file",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := ""
			if len(args) == 3 {
				dest = args[2]
			}
			return handlers.StorageDownload(cmd.Context(), configPath, args[0], args[1], dest)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}
