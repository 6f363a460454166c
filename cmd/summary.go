package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/pflow/internal/cli"
	"github.com/theirongolddev/pflow/internal/pipeline"
	"github.com/theirongolddev/pflow/internal/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Dashboard summary across projects, budget, and reports",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}

	rows := s.ws.ProjectStats(s.today)
	pf := pipeline.Summarize(rows)
	totals := s.ws.Totals()
	history := report.Summarize(s.ws.Reports(), s.today)

	sessionLabel := "signed out"
	if s.cfg.Session.Authenticated {
		sessionLabel = "signed in"
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTFLOW  %s", cli.FormatDate(s.today))))
	fmt.Println()

	if pf.Projects == 0 && len(s.ws.Budget()) == 0 {
		fmt.Println("  No projects yet. Create one with `pflow projects add` or load a batch with --import.")
		return nil
	}

	latest := "-"
	if !history.Latest.IsZero() {
		latest = cli.FormatDate(history.Latest)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Projects", cli.FormatNumber(int64(pf.Projects))},
			{"Active", cli.FormatNumber(int64(pf.Active))},
			{"Urgent", cli.FormatNumber(int64(pf.Urgent))},
			{"Overdue", cli.FormatNumber(int64(pf.Overdue))},
			{"Tasks done", fmt.Sprintf("%d / %d", pf.TasksCompleted, pf.TotalTasks)},
			{"Progress", cli.RenderProgressBar(pf.Progress, 20)},
			{"---"},
			{"Income", cli.FormatMoney(totals.Income)},
			{"Expense", cli.FormatMoney(totals.Expense)},
			{"Balance", cli.RenderBalance(totals.Balance)},
			{"---"},
			{"Reports", cli.FormatNumber(int64(history.Total))},
			{"This month", cli.FormatNumber(int64(history.ThisMonth))},
			{"Latest", latest},
			{"---"},
			{"Session", sessionLabel},
		},
	}))
	return nil
}
