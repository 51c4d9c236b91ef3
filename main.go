package main

import (
	"os"

	"github.com/mwelte/undo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
