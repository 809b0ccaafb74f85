// Package main is the entry point for the sqltree CLI binary.
package main

import (
	"os"

	"sqltree/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
