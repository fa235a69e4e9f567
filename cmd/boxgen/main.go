// Package main is the entry point for the boxgen CLI.
package main

import (
	"context"
	"os"

	"boxgen/internal/commands"
)

func main() {
	os.Exit(commands.Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
