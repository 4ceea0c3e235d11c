// Package main provides the entry point for the eventhub CLI tool.
package main

import "github.com/agentstation/eventhub/cmd/eventhub/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
