package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/pflow/internal/cli"
	"github.com/theirongolddev/pflow/internal/config"
	"github.com/theirongolddev/pflow/internal/pipeline"
	"github.com/theirongolddev/pflow/internal/workspace"
)

var (
	flagToday  string
	flagQuiet  bool
	flagNoSeed bool
	flagImport string
)

var rootCmd = &cobra.Command{
	Use:   "pflow",
	Short: "ProjectFlow dashboard in the terminal",
	Long: "Track projects, their task boards, and a budget ledger, and generate status reports.\n" +
		"Every run starts from the seed data; use --import to load a JSONL batch on top.",
	SilenceUsage: true,
	RunE:         runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "Override today's date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagNoSeed, "no-seed", false, "Start with an empty workspace")
	rootCmd.PersistentFlags().StringVar(&flagImport, "import", "", "JSONL file or directory to import on start")
}

// session is the state one command invocation works on.
type session struct {
	cfg   config.Config
	ws    *workspace.Workspace
	today time.Time
}

// loadSession builds the in-memory workspace shared by all commands: config,
// the resolved date, seed data, and the optional --import batch. The tui
// command imports on its own so it can show progress, and passes
// applyImport=false.
func loadSession(applyImport bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	today, err := cfg.Today(flagToday, time.Now())
	if err != nil {
		return nil, err
	}

	ws := workspace.New(nil)
	if cfg.General.Seed && !flagNoSeed {
		ws.Seed()
	}

	if applyImport && flagImport != "" {
		if _, err := importBatch(ws, flagImport); err != nil {
			return nil, err
		}
	}

	return &session{cfg: cfg, ws: ws, today: today}, nil
}

// importBatch parses path and applies its records, printing progress to
// stderr unless --quiet.
func importBatch(ws *workspace.Workspace, path string) (workspace.ImportResult, error) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Reading %s...\n", path)
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%10 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
		}
	}

	result, err := pipeline.Load(path, progressFn)
	if err != nil {
		return workspace.ImportResult{}, fmt.Errorf("import: %w", err)
	}
	res := ws.Import(result.Records)

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "\r  Imported %s from %s    \n",
			cli.FormatCount(res.Applied(), "record"),
			cli.FormatCount(result.ParsedFiles, "file"))
		if result.ParseErrors > 0 {
			fmt.Fprintf(os.Stderr, "  %s could not be parsed\n", cli.FormatCount(result.ParseErrors, "line"))
		}
		if result.FileErrors > 0 {
			fmt.Fprintf(os.Stderr, "  %s could not be read\n", cli.FormatCount(result.FileErrors, "file"))
		}
		for _, err := range res.Rejected {
			fmt.Fprintf(os.Stderr, "  rejected %v\n", err)
		}
	}
	return res, nil
}

// resolveProject resolves a project argument, printing nothing.
func (s *session) resolveProject(args []string) (string, error) {
	ref := ""
	if len(args) > 0 {
		ref = args[0]
	}
	p, err := s.ws.ResolveProject(ref)
	if err != nil {
		if ref == "" {
			return "", fmt.Errorf("no projects: %w", err)
		}
		return "", fmt.Errorf("%q: %w", ref, err)
	}
	return p.ID, nil
}
