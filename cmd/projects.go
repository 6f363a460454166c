package cmd

import (
	"fmt"

	"github.com/theirongolddev/pflow/internal/cli"
	"github.com/theirongolddev/pflow/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagProjectFilter      string
	flagProjectName        string
	flagProjectDescription string
	flagProjectDeadline    string
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Project list with progress and deadline urgency",
	RunE:  runProjects,
}

var projectsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a project and print the resulting list",
	RunE:  runProjectsAdd,
}

func init() {
	projectsCmd.Flags().StringVar(&flagProjectFilter, "filter", "", "Only show projects whose name contains this text")

	projectsAddCmd.Flags().StringVar(&flagProjectName, "name", "", "Project name")
	projectsAddCmd.Flags().StringVar(&flagProjectDescription, "description", "", "Project description")
	projectsAddCmd.Flags().StringVar(&flagProjectDeadline, "deadline", "", "Deadline (YYYY-MM-DD)")

	projectsCmd.AddCommand(projectsAddCmd)
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(_ *cobra.Command, _ []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}
	printProjects(s, flagProjectFilter)
	return nil
}

func runProjectsAdd(_ *cobra.Command, _ []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}
	p, err := s.ws.CreateProject(pipeline.NewProject{
		Name:        flagProjectName,
		Description: flagProjectDescription,
		Deadline:    flagProjectDeadline,
	})
	if err != nil {
		return err
	}
	fmt.Printf("\n  Created project %q (#%s)\n", p.Name, p.ID)
	printProjects(s, "")
	return nil
}

func printProjects(s *session, filter string) {
	projects := pipeline.FilterByName(s.ws.Projects(), filter)
	if len(projects) == 0 {
		if filter != "" {
			fmt.Printf("\n  No projects match %q.\n", filter)
		} else {
			fmt.Println("\n  No projects found.")
		}
		return
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTS  as of %s", cli.FormatDate(s.today))))
	fmt.Println()

	stats := pipeline.AggregateProjects(projects, s.today)
	rows := make([][]string, 0, len(stats))
	for _, ps := range stats {
		rows = append(rows, []string{
			cli.Truncate(ps.Project.Name, 24),
			cli.RenderProgressBar(ps.Project.Progress, 12),
			fmt.Sprintf("%d/%d", ps.Project.TasksCompleted, ps.Project.TotalTasks),
			cli.FormatDate(ps.Project.Deadline),
			cli.FormatDaysRemaining(ps.DaysRemaining),
			cli.RenderUrgency(ps.Urgency),
		})
	}

	pf := pipeline.Summarize(stats)
	rows = append(rows,
		[]string{"---"},
		[]string{
			"Total",
			cli.RenderProgressBar(pf.Progress, 12),
			fmt.Sprintf("%d/%d", pf.TasksCompleted, pf.TotalTasks),
			"", "",
			fmt.Sprintf("%d overdue, %d urgent", pf.Overdue, pf.Urgent),
		},
	)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Project", "Progress", "Tasks", "Deadline", "Remaining", "Status"},
		Rows:    rows,
		Right:   []bool{false, false, true},
	}))
}
