package main

import (
	"os"

	"github.com/bmaertens/upkeep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
