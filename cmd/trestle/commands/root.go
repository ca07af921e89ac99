// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the trestle CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trestle",
		Short: "Reserve and provision testbed resources",
	}

	cmd.AddCommand(Lease())
	cmd.AddCommand(Server())
	cmd.AddCommand(Container())
	cmd.AddCommand(Network())
	cmd.AddCommand(Share())
	cmd.AddCommand(Hardware())
	cmd.AddCommand(Keypair())
	cmd.AddCommand(Storage())
	cmd.AddCommand(Version())

	return cmd
}
