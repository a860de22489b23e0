package main

import (
	"fmt"
	"os"

	"github.com/dgallion1/mdsplit/internal/cli"
)

// Version is injected via ldflags.
var Version = "dev"

func main() {
	if err := cli.Execute(Version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
