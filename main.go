// queryforge – natural-language to SQL with an execution advisor.
//
// Entry point: initializes the Cobra root command.
package main

import (
	"os"

	"github.com/queryforge/queryforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
