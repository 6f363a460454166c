package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/pflow/internal/board"
	"github.com/theirongolddev/pflow/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagTaskProject  string
	flagTaskTitle    string
	flagTaskAssignee string
	flagTaskDue      string
	flagTaskStatus   string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Create and move tasks on a project board",
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a task and print the board",
	Args:  cobra.NoArgs,
	RunE:  runTaskAdd,
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <task> <status>",
	Short: "Move a task (by ID or title) to pending, in-progress, or completed",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskMove,
}

func init() {
	taskCmd.PersistentFlags().StringVarP(&flagTaskProject, "project", "p", "", "Project ID or name (defaults to the first project)")

	taskAddCmd.Flags().StringVar(&flagTaskTitle, "title", "", "Task title")
	taskAddCmd.Flags().StringVar(&flagTaskAssignee, "assignee", "", "Person responsible")
	taskAddCmd.Flags().StringVar(&flagTaskDue, "due", "", "Due date (YYYY-MM-DD)")
	taskAddCmd.Flags().StringVar(&flagTaskStatus, "status", "pending", "Initial column")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskMoveCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskAdd(_ *cobra.Command, _ []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}
	projectID, err := s.resolveProject([]string{flagTaskProject})
	if err != nil {
		return err
	}
	status, err := model.ParseStatus(flagTaskStatus)
	if err != nil {
		return err
	}

	t, err := s.ws.CreateTask(projectID, board.NewTask{
		Title:    flagTaskTitle,
		Assignee: flagTaskAssignee,
		DueDate:  flagTaskDue,
		Status:   status,
	})
	if err != nil {
		return err
	}
	fmt.Printf("\n  Added %q to %s\n", t.Title, t.Status.Label())
	printBoard(s, projectID)
	return nil
}

func runTaskMove(_ *cobra.Command, args []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}
	projectID, err := s.resolveProject([]string{flagTaskProject})
	if err != nil {
		return err
	}
	status, err := model.ParseStatus(args[1])
	if err != nil {
		return err
	}

	t, err := findTask(s.ws.Tasks(projectID), args[0])
	if err != nil {
		return err
	}
	if _, err := s.ws.MoveTask(projectID, t.ID, status); err != nil {
		return err
	}
	fmt.Printf("\n  Moved %q: %s -> %s\n", t.Title, t.Status.Label(), status.Label())
	printBoard(s, projectID)
	return nil
}

// findTask matches ref against task IDs first, then case-insensitive titles.
func findTask(tasks []model.Task, ref string) (model.Task, error) {
	if t, ok := board.Find(tasks, ref); ok {
		return t, nil
	}
	var match []model.Task
	for _, t := range tasks {
		if strings.EqualFold(t.Title, ref) {
			match = append(match, t)
		}
	}
	switch len(match) {
	case 0:
		return model.Task{}, fmt.Errorf("task %q not found", ref)
	case 1:
		return match[0], nil
	}
	return model.Task{}, errors.New("several tasks share that title; use the task ID")
}
