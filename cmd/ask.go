package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/queryforge/queryforge/ai"
	"github.com/queryforge/queryforge/applog"
	"github.com/queryforge/queryforge/config"
	"github.com/queryforge/queryforge/db"
	"github.com/queryforge/queryforge/pipeline"
)

var (
	askSchema  string
	askExecute bool
)

var (
	labelStyle  = lipgloss.NewStyle().Bold(true)
	sqlStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	adviceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

var askCmd = &cobra.Command{
	Use:   "ask [request]",
	Short: "Turn a natural-language request into a SQL statement",
	Long: `ask runs the full pipeline for one request and prints the generated
statement. With --execute the statement is also run and the results
and optimization advice are printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askSchema, "schema", "public", "target schema")
	askCmd.Flags().BoolVar(&askExecute, "execute", false, "execute the generated statement")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	request := strings.Join(args, " ")

	appCfg, err := config.LoadAppConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	chain, err := ai.NewChainFromConfig(appCfg.AI)
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, config.LoadDB())
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	defer database.Close()
	defer applog.Close()

	pipe := pipeline.New(chain, database, database)
	rc := pipe.Run(ctx, request, askSchema)

	if rc.Refined != "" {
		fmt.Println(labelStyle.Render("Refined request:"), rc.Refined)
	}
	if rc.Failed() {
		fmt.Println(errorStyle.Render(rc.ErrDetail))
		return nil
	}

	fmt.Println(labelStyle.Render("Generated SQL:"))
	fmt.Println(sqlStyle.Render(rc.Statement))

	if !askExecute {
		return nil
	}

	result, err := database.Run(ctx, rc.Statement, askSchema)
	if err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		return nil
	}
	printResult(result)
	return nil
}

func printResult(result *db.Result) {
	if result.Operation.IsRead() {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(result.Columns...).
			Rows(result.Rows...)
		fmt.Println(t)
		fmt.Printf("(%d rows)\n", len(result.Rows))
	} else {
		fmt.Printf("%s: %d row(s) affected\n", result.Operation, result.Affected)
	}

	if len(result.Advisories) > 0 {
		fmt.Println(labelStyle.Render("Optimization tips:"))
		for _, a := range result.Advisories {
			fmt.Println(adviceStyle.Render("  - " + a))
		}
	}
}
