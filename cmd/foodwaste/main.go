// Command foodwaste manages food-donation listings and runs the report
// catalog over a SQLite store.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/foodwaste/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
