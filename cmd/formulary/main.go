package main

import (
	"os"

	"Formulary/cmd/formulary/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
