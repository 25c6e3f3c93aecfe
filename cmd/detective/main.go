package main

import (
	"os"

	"github.com/tatianab/detective-quest/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
