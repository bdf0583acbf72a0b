// Command boundreal evaluates and records bounded real arithmetic.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/boundreal/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
