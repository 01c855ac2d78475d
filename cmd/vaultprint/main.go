// Command vaultprint prints notes from an Obsidian vault to PDF using the
// vault's theme colors and print snippet.
package main

import (
	"os"

	"github.com/porticus-lab/vaultprint/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
