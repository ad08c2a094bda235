// Package main is the entry point for the logdemo CLI.
package main

import (
	"os"

	"github.com/thoreinstein/logargs/cmd/logdemo/commands"
	clierrors "github.com/thoreinstein/logargs/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(clierrors.Code(err))
	}
}
