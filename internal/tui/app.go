// Package tui provides the interactive Bubble Tea dashboard for pflow.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pflow/internal/cli"
	"github.com/theirongolddev/pflow/internal/config"
	"github.com/theirongolddev/pflow/internal/pipeline"
	"github.com/theirongolddev/pflow/internal/report"
	"github.com/theirongolddev/pflow/internal/tui/components"
	"github.com/theirongolddev/pflow/internal/tui/theme"
	"github.com/theirongolddev/pflow/internal/workspace"
)

// ProgressMsg reports import file parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// ImportDoneMsg is sent when the background import parse finishes. The
// records are applied to the workspace by Update, on the UI goroutine.
type ImportDoneMsg struct {
	Result   *pipeline.LoadResult
	Err      error
	LoadTime time.Duration
}

// ReportReadyMsg carries a finished report request back into the update loop.
type ReportReadyMsg struct {
	Reply report.Reply
}

// CopiedMsg reports the outcome of a clipboard write.
type CopiedMsg struct {
	Err error
}

// Options configures a new App.
type Options struct {
	Today time.Time

	// FirstRun shows the setup form before the dashboard.
	FirstRun bool

	// ImportPath, when set, is parsed in the background before the
	// dashboard is shown.
	ImportPath string

	// Copy writes text to the system clipboard. Nil uses atotto/clipboard.
	Copy func(string) error
}

// App is the root Bubble Tea model. It owns the workspace: every mutation
// happens inside Update.
type App struct {
	ws    *workspace.Workspace
	cfg   config.Config
	today time.Time

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     string

	// Per-tab state
	projects projectsState
	board    boardState
	budget   budgetState
	reports  reportsState
	settings settingsState

	// Forms (huh); vals is heap-allocated so field pointers survive App copies
	form     *huh.Form
	formKind formKind
	vals     *formValues

	// Report generation
	requester *report.Requester
	spinner   spinner.Model

	// Import loading, channel-based progress subscription
	loaded      bool
	importPath  string
	progress    int
	progressMax int
	loadSub     chan tea.Msg

	copyText func(string) error
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
)

// NewApp creates a new TUI app model over ws.
func NewApp(ws *workspace.Workspace, cfg config.Config, opts Options) App {
	theme.SetActive(cfg.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	copyText := opts.Copy
	if copyText == nil {
		copyText = clipboard.WriteAll
	}
	today := opts.Today
	if today.IsZero() {
		today, _ = cfg.Today("", time.Now())
	}

	a := App{
		ws:         ws,
		cfg:        cfg,
		today:      today,
		requester:  report.NewRequester(cfg.ReportLatency()),
		spinner:    sp,
		loaded:     opts.ImportPath == "",
		importPath: opts.ImportPath,
		loadSub:    make(chan tea.Msg, 1),
		copyText:   copyText,
	}
	if ps := ws.Projects(); len(ps) > 0 {
		a.board.project = ps[0].ID
	}
	if opts.FirstRun {
		a.openForm(formSetup)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if !a.loaded {
		cmds = append(cmds, loadImportCmd(a.importPath, a.loadSub), a.spinner.Tick)
	}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width, 72)).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.form != nil {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case ImportDoneMsg:
		a.loaded = true
		a.flash = a.applyImport(msg)
		if a.board.project == "" {
			if ps := a.ws.Projects(); len(ps) > 0 {
				a.board.project = ps[0].ID
			}
		}
		return a, nil

	case ReportReadyMsg:
		return a.finishReport(msg.Reply), nil

	case CopiedMsg:
		if msg.Err != nil {
			a.flash = "copy failed: " + msg.Err.Error()
		} else {
			a.flash = "report copied to clipboard"
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded || a.requester.Pending() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the open form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		a.requester.Cancel()
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}
	if a.form != nil {
		if key == "esc" {
			a.closeForm()
			return a, nil
		}
		return a.updateForm(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	a.flash = ""

	var (
		handled bool
		cmd     tea.Cmd
	)
	switch a.activeTab {
	case components.TabProjects:
		a, cmd, handled = a.updateProjects(key)
	case components.TabBoard:
		a, cmd, handled = a.updateBoard(key)
	case components.TabBudget:
		a, cmd, handled = a.updateBudget(key)
	case components.TabReports:
		a, cmd, handled = a.updateReports(key)
	case components.TabSettings:
		a, cmd, handled = a.updateSettings(key)
	}
	if handled {
		return a, cmd
	}

	switch key {
	case "q":
		a.requester.Cancel()
		return a, tea.Quit
	case "tab", "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "shift+tab", "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	default:
		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(r[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

// startReport begins generating a report for the board's current project,
// superseding any request still in flight.
func (a App) startReport() (App, tea.Cmd) {
	snap, err := a.ws.ReportSnapshot(a.board.project)
	if err != nil {
		a.flash = err.Error()
		return a, nil
	}
	_, ch := a.requester.Start(context.Background(), snap, a.today)
	a.flash = ""
	return a, tea.Batch(a.spinner.Tick, waitForReport(ch))
}

func (a App) finishReport(rep report.Reply) App {
	if !a.requester.Finish(rep) {
		return a
	}
	switch {
	case errors.Is(rep.Err, context.Canceled):
		a.flash = "report cancelled"
	case rep.Err != nil:
		a.flash = "report failed: " + rep.Err.Error()
	default:
		r := a.ws.AddReport(rep.Snapshot, rep.Content, rep.AsOf)
		a.reports.cursor = 0
		a.reports.scroll = 0
		a.flash = "report generated for " + r.ProjectName
	}
	return a
}

func (a App) applyImport(msg ImportDoneMsg) string {
	if msg.Err != nil {
		return "import failed: " + msg.Err.Error()
	}
	res := a.ws.Import(msg.Result.Records)
	out := fmt.Sprintf("imported %s in %.1fs", cli.FormatCount(res.Applied(), "record"), msg.LoadTime.Seconds())
	if bad := len(res.Rejected) + msg.Result.ParseErrors; bad > 0 {
		out += fmt.Sprintf(", %d rejected", bad)
	}
	return out
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	t := theme.Active
	msg := lipgloss.NewStyle().
		Foreground(t.Orange).
		Background(t.Background).
		Render(fmt.Sprintf("Terminal too narrow (%d cols, need %d)", a.width, minTerminalWidth))
	return lipgloss.Place(a.width, max(a.height, 5), lipgloss.Center, lipgloss.Center, msg,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ pflow"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	if a.progressMax > 0 {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf(" Importing %s / %s files",
			cli.FormatNumber(int64(a.progress)), cli.FormatNumber(int64(a.progressMax)))))
	} else {
		b.WriteString(subtitleStyle.Render(" Reading " + a.importPath + "..."))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		name     string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"p b u r x", "Jump to tab"},
			{"tab ⇧tab", "Next / Previous tab"},
			{"j k", "Move selection"},
		}},
		{"Board", [][2]string{
			{"h l", "Move between columns"},
			{"space", "Pick up / drop task"},
			{"< >", "Move task one column"},
			{"[ ]", "Previous / Next project"},
			{"esc", "Cancel drag"},
		}},
		{"Actions", [][2]string{
			{"n", "New project / task / budget item"},
			{"d", "Remove budget item"},
			{"g", "Generate report"},
			{"c", "Copy report"},
			{"enter", "Open / Toggle"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderContextRow(w)

	info := components.StatusInfo{
		SignedIn: a.cfg.Session.Authenticated,
		Today:    cli.FormatDate(a.today),
		Flash:    a.flash,
	}
	if a.requester.Pending() {
		info.Pending = a.spinner.View() + " generating report"
	}
	statusBar := components.RenderStatusBar(w, info)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case components.TabProjects:
		content = a.renderProjectsTab(cw)
	case components.TabBoard:
		content = a.renderBoardTab(cw)
	case components.TabBudget:
		content = a.renderBudgetTab(cw)
	case components.TabReports:
		content = a.renderReportsTab(cw, contentH)
	case components.TabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderContextRow shows which project the board and reports act on.
func (a App) renderContextRow(w int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	row := dim.Render(" project ")
	if p, ok := a.ws.Project(a.board.project); ok {
		row += accent.Render(p.Name)
	} else {
		row += accent.Render(report.DefaultProjectName)
	}
	return lipgloss.NewStyle().Background(t.Surface).Width(w).Render(row)
}

// ─── Commands ───────────────────────────────────────────────────

// loadImportCmd parses an import path in a background goroutine, streaming
// ProgressMsg updates and a final ImportDoneMsg through sub.
func loadImportCmd(path string, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()
			// Non-blocking send so workers aren't stalled; the next update catches up.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}
			res, err := pipeline.Load(path, progressFn)
			sub <- ImportDoneMsg{Result: res, Err: err, LoadTime: time.Since(start)}
		}()
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

func waitForReport(ch <-chan report.Reply) tea.Cmd {
	return func() tea.Msg {
		return ReportReadyMsg{Reply: <-ch}
	}
}

func copyCmd(copyText func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Err: copyText(text)}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with the background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// clampCursor keeps a list cursor inside [0, n).
func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	return max(cursor, 0)
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes use the same widths as RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}
