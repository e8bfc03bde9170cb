package main

import (
	"os"

	"github.com/bianoble/testharness/cmd/testharness/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
