package main

import (
	"os"

	"wtime/cmd/wtime/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
