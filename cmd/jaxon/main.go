package main

import (
	"os"

	"github.com/km-arc/go-jaxon/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
