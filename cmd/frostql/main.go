// Command frostql is the command-line entry point.
package main

import (
	"os"

	"github.com/frostline-labs/frostql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
