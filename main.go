// Command detective-quest is the same program as cmd/detective, kept at the
// module root so "go run ." starts a game.
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
