package main

import (
	"os"

	"github.com/paramreg/registry/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
