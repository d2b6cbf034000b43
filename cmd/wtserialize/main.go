package main

import (
	"os"

	"github.com/parsoid-go/wtserialize/cmd/wtserialize/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
