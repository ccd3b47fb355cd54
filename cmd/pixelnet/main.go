// Package main provides the pixelnet CLI.
package main

import (
	"os"

	"github.com/born-ml/pixelnet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
