package main

import (
	"os"

	"github.com/x31a/acrobits-websvc/cmd/acrobits-websvc/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
