// Package main is the entry point for the sheeter CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bjaus/sheeter/internal/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
