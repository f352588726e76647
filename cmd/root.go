// Package cmd contains all Cobra commands for queryforge.
//
// Two entry points: `ask` converts a natural-language request into a
// SQL statement (optionally executing it), and `serve` exposes the
// same functionality over HTTP.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "queryforge",
	Short: "Natural-language to SQL with validation and performance advice",
	Long: `queryforge turns natural-language requests into validated PostgreSQL
statements, executes them, and derives optimization advice from the
execution plan.

The request runs through a staged pipeline: the phrasing is refined,
checked for feasibility against the live schema, and only then turned
into SQL. Reasoning engines are called through an ordered fallback
chain (groq, gemini, ollama by default) so a provider outage does not
fail the request.

Database settings come from the environment (PGHOST, PGPORT, PGUSER,
PGPASSWORD, PGDATABASE; a .env file is honored). AI settings live in
~/.queryforge/config.json.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
