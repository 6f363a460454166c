package cmd

import (
	"fmt"

	"github.com/theirongolddev/pflow/internal/cli"

	"github.com/spf13/cobra"
)

var flagBoardWidth int

var boardCmd = &cobra.Command{
	Use:   "board [project]",
	Short: "Kanban board for one project (defaults to the first)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBoard,
}

func init() {
	boardCmd.Flags().IntVar(&flagBoardWidth, "width", 28, "Column width in cells")
	rootCmd.AddCommand(boardCmd)
}

func runBoard(_ *cobra.Command, args []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}
	projectID, err := s.resolveProject(args)
	if err != nil {
		return err
	}
	printBoard(s, projectID)
	return nil
}

func printBoard(s *session, projectID string) {
	p, _ := s.ws.Project(projectID)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BOARD  %s", cli.Truncate(p.Name, 40))))
	fmt.Println()
	fmt.Println(cli.RenderBoard(s.ws.Tasks(projectID), max(flagBoardWidth, 12)))
	fmt.Printf("  %s  %d/%d done\n\n", cli.RenderProgressBar(p.Progress, 20), p.TasksCompleted, p.TotalTasks)
}
