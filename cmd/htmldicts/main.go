// Package main provides the entry point for the htmldicts CLI.
package main

import (
	"os"

	"github.com/setia/htmldicts/cmd/htmldicts/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
