// Command update-forms restyles the careers application forms in place.
package main

import (
	"io"
	"os"

	"formrestyle/internal/cli"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	return cli.Run(args, stdout, stderr)
}
