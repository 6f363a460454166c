package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/pflow/internal/store"

	"github.com/spf13/cobra"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the workspace to a SQLite database",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "pflow.db", "Database file to write (replaced if it exists)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Writing %s...\n", flagExportOut)
	}
	sum, err := store.Export(flagExportOut, s.ws.State(), s.today)
	if err != nil {
		return err
	}

	fmt.Printf("  Exported %d projects, %d tasks, %d budget lines, %d reports to %s\n",
		sum.Projects, sum.Tasks, sum.Budget, sum.Reports, flagExportOut)
	return nil
}
