package main

import (
	"github.com/tacogips/crossgen/internal/cli"
)

func main() {
	// Execute the root command
	cli.Execute()
}
