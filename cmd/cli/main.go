package main

import (
	"os"

	"github.com/recipebook/recipes/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
