package main

import (
	"os"

	"github.com/majorcontext/jvmpack/cmd/jvmpack/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
