package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/trestle/cmd/trestle/handlers"
)

// Keypair returns the parent command for SSH keypair management.
func Keypair() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keypair",
		Short: "Manage SSH keypairs for instance access",
	}

	cmd.AddCommand(keypairCreate())
	cmd.AddCommand(keypairList())
	cmd.AddCommand(keypairDelete())

	return cmd
}

func keypairCreate() *cobra.Command {
	var (
		configPath string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Generate and register a new SSH keypair",
		Long: `Generate a fresh Ed25519 keypair, register the public key under NAME,
and save the private key locally.

Example:
  trestle keypair create my-key --out ~/.ssh/my-key.pem`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.KeypairCreate(cmd.Context(), configPath, args[0], outPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")
	cmd.Flags().StringVar(&outPath, "out", "", "Private key output path (default: NAME.pem)")

	return cmd
}

func keypairList() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered keypairs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.KeypairList(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}

func keypairDelete() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a registered keypair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.KeypairDelete(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trestle.yaml or environment)")

	return cmd
}
