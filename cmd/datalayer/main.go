// Package main is the entry point of the datalayer CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"gorm.io/datalayer/cmd/datalayer/commands"
	"gorm.io/datalayer/connection"
)

var (
	// Version information (set by build)
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := run(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	registry := connection.NewRegistry(nil)
	defer registry.Close()

	rootCmd := commands.NewRootCommand(commands.DefaultConnector(registry))
	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", Version, Commit)
	return rootCmd.ExecuteContext(context.Background())
}
