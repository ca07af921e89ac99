// Package main is the entry point for the trestle CLI.
//
// trestle reserves bare-metal nodes, networks, and edge devices on a
// testbed cloud, then provisions servers and containers on top of those
// reservations.
//
// Commands: lease, server, container, network, share, hardware, keypair,
// storage, version.
//
// For detailed usage information, run:
//
//	trestle --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/trestle/cmd/trestle/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
