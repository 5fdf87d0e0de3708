// CLI entry point for the MFR risk engine.
package main

import (
	"context"
	"os"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/interfaces/cli"
)

func main() {
	// Execute prints the error itself.
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}

//Personal.AI order the ending
