package main

import (
	"os"

	"github.com/solatis/mapkeeper/cmd/mapkeeper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
