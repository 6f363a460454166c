package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/atotto/clipboard"

	"github.com/theirongolddev/pflow/internal/cli"
	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/report"

	"github.com/spf13/cobra"
)

var flagReportLatency time.Duration

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"reports"},
	Short:   "Report history",
	RunE:    runReportList,
}

var reportGenerateCmd = &cobra.Command{
	Use:   "generate [project]",
	Short: "Generate a status report for a project (defaults to the first)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReportGenerate,
}

var reportShowCmd = &cobra.Command{
	Use:   "show [report]",
	Short: "Print a report by ID or list position (1 is the newest)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReportShow,
}

var reportCopyCmd = &cobra.Command{
	Use:   "copy [report]",
	Short: "Copy a report to the system clipboard",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReportCopy,
}

func init() {
	reportGenerateCmd.Flags().DurationVar(&flagReportLatency, "latency", -1, "Override the configured generation delay")

	reportCmd.AddCommand(reportGenerateCmd)
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportCopyCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportList(_ *cobra.Command, _ []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}
	history := s.ws.Reports()
	if len(history) == 0 {
		fmt.Println("\n  No reports yet. Generate one with `pflow report generate`.")
		return nil
	}

	stats := report.Summarize(history, s.today)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("REPORTS  %d total, %d this month", stats.Total, stats.ThisMonth)))
	fmt.Println()

	rows := make([][]string, 0, len(history))
	for i, r := range history {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			cli.Truncate(r.ProjectName, 28),
			cli.FormatDate(r.Date),
			cli.Truncate(r.ID, 8),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Project", "Date", "ID"},
		Rows:    rows,
		Right:   []bool{true},
	}))
	return nil
}

func runReportGenerate(_ *cobra.Command, args []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}
	projectID, err := s.resolveProject(args)
	if err != nil {
		return err
	}
	snap, err := s.ws.ReportSnapshot(projectID)
	if err != nil {
		return err
	}

	latency := s.cfg.ReportLatency()
	if flagReportLatency >= 0 {
		latency = flagReportLatency
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Generating report for %s...\n", snap.ProjectName)
	}
	res := <-report.GenerateAsync(ctx, snap, s.today, latency)
	if res.Err != nil {
		if errors.Is(res.Err, context.Canceled) {
			return errors.New("report generation canceled")
		}
		return res.Err
	}

	r := s.ws.AddReport(snap, res.Value, s.today)
	printReport(r)
	return nil
}

func runReportShow(_ *cobra.Command, args []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}
	r, err := pickReport(s.ws.Reports(), args)
	if err != nil {
		return err
	}
	printReport(r)
	return nil
}

func runReportCopy(_ *cobra.Command, args []string) error {
	s, err := loadSession(true)
	if err != nil {
		return err
	}
	r, err := pickReport(s.ws.Reports(), args)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(r.Content); err != nil {
		return fmt.Errorf("copy report: %w", err)
	}
	fmt.Printf("  Copied report for %s (%s) to the clipboard\n", r.ProjectName, cli.FormatDate(r.Date))
	return nil
}

// pickReport resolves a report by ID or 1-based position; no argument means
// the newest.
func pickReport(history []model.Report, args []string) (model.Report, error) {
	if len(history) == 0 {
		return model.Report{}, errors.New("no reports in history")
	}
	if len(args) == 0 {
		return history[0], nil
	}
	if r, ok := report.Find(history, args[0]); ok {
		return r, nil
	}
	if n, err := strconv.Atoi(args[0]); err == nil && n >= 1 && n <= len(history) {
		return history[n-1], nil
	}
	return model.Report{}, fmt.Errorf("report %q not found", args[0])
}

func printReport(r model.Report) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("REPORT  %s  %s", cli.Truncate(r.ProjectName, 28), cli.FormatDate(r.Date))))
	fmt.Println()
	fmt.Println(r.Content)
	fmt.Println()
}
