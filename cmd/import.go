package cmd

import (
	"fmt"

	"github.com/theirongolddev/pflow/internal/cli"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file|dir>",
	Short: "Validate a JSONL batch against the workspace and report what applies",
	Long: "Each line holds one record: {\"kind\":\"project\"|\"task\"|\"budget\", ...}.\n" +
		"Records go through the same validation as the forms; rejected lines are listed.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}
	res, err := importBatch(s.ws, args[0])
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("IMPORT"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Records", "Count"},
		Rows: [][]string{
			{"Projects", cli.FormatNumber(int64(res.Projects))},
			{"Tasks", cli.FormatNumber(int64(res.Tasks))},
			{"Budget lines", cli.FormatNumber(int64(res.Budget))},
			{"---"},
			{"Applied", cli.FormatNumber(int64(res.Applied()))},
			{"Rejected", cli.FormatNumber(int64(len(res.Rejected)))},
		},
		Right: []bool{false, true},
	}))

	if res.Applied() > 0 {
		printProjects(s, "")
	}
	return nil
}
