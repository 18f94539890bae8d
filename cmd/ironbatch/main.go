// Package main is the entry point for the ironbatch CLI.
//
// ironbatch turns a pool of allocatable bare-metal nodes into running
// OpenStack instances in one batch: it selects nodes, assigns one per
// requested instance, creates the instances in parallel under a concurrency
// cap, and waits for each to become active.
//
// Commands: provision, nodes, version, completion.
//
// For detailed usage information, run:
//
//	ironbatch --help
package main

import (
	"fmt"
	"os"

	"github.com/ironbatch/ironbatch/cmd/ironbatch/commands"
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
