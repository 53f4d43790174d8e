// Command trialsize estimates the participants and trials a meta-analysis
// needs to measure subgroup proportions with a given precision.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/trialsize/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		// ExitErrors have already been reported by the command's formatter.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	os.Exit(cli.GetExitCode(err))
}
