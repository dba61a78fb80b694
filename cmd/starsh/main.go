// Package main is the entry point for the starsh binary —
// a launcher for an interactive Starlark shell.
package main

import (
	"os"

	"starsh/internal/cli"
)

const version = "0.1.0"

func main() {
	os.Exit(cli.Run(os.Args[1:], version))
}
