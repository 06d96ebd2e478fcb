package main

import (
	"fmt"
	"os"

	"github.com/roach88/strata/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands emit their own formatted output; stderr gets the bare
		// error for scripting.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
