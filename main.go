package main

import (
	"os"

	"github.com/notargets/gobem/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
