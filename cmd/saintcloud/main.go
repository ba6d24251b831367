// Package main is the entry point for the saintcloud CLI.
//
// saintcloud finds App Engine versions that have no running instances
// across the projects visible to its credentials and deletes them after
// confirmation.
//
// For detailed usage information, run:
//
//	saintcloud --help
package main

import (
	"fmt"
	"os"

	"github.com/saintcloud/saintcloud/cmd/saintcloud/commands"
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
