package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pflow/internal/board"
	"github.com/theirongolddev/pflow/internal/cli"
	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/tui/components"
	"github.com/theirongolddev/pflow/internal/tui/theme"
)

// boardState is the cursor over the three status columns plus the drag slot.
// While a drag is active, col is the column under the dragged card.
type boardState struct {
	project string
	col     int // index into model.Statuses
	row     int
	drag    board.DragSlot
}

func (s boardState) status() model.Status {
	return model.Statuses[s.col]
}

// focus moves the cursor onto taskID.
func (s *boardState) focus(tasks []model.Task, taskID string) {
	t, ok := board.Find(tasks, taskID)
	if !ok {
		return
	}
	for i, st := range model.Statuses {
		if st == t.Status {
			s.col = i
		}
	}
	for i, c := range board.Column(tasks, t.Status) {
		if c.ID == taskID {
			s.row = i
		}
	}
}

// selected returns the task under the cursor.
func (s boardState) selected(tasks []model.Task) (model.Task, bool) {
	col := board.Column(tasks, s.status())
	if s.row < 0 || s.row >= len(col) {
		return model.Task{}, false
	}
	return col[s.row], true
}

func (a App) updateBoard(key string) (App, tea.Cmd, bool) {
	tasks := a.ws.Tasks(a.board.project)
	bs := &a.board

	switch key {
	case "h", "left":
		bs.col = indexOf(board.Shift(bs.status(), -1))
		bs.row = clampCursor(bs.row, len(board.Column(tasks, bs.status())))
	case "l", "right":
		bs.col = indexOf(board.Shift(bs.status(), 1))
		bs.row = clampCursor(bs.row, len(board.Column(tasks, bs.status())))
	case "j", "down":
		if !bs.drag.Active() {
			bs.row = clampCursor(bs.row+1, len(board.Column(tasks, bs.status())))
		}
	case "k", "up":
		if !bs.drag.Active() {
			bs.row = clampCursor(bs.row-1, len(board.Column(tasks, bs.status())))
		}
	case " ", "enter":
		if bs.drag.Active() {
			a.flash = a.drop()
			return a, nil, true
		}
		if t, ok := bs.selected(tasks); ok {
			bs.drag = board.BeginDrag(t.ID)
			a.flash = "dragging " + t.Title
		}
	case "esc":
		if !bs.drag.Active() {
			return a, nil, false
		}
		bs.drag = board.DragSlot{}
		a.flash = "drag cancelled"
	case "<", ">":
		t, ok := bs.selected(tasks)
		if !ok || bs.drag.Active() {
			return a, nil, true
		}
		delta := 1
		if key == "<" {
			delta = -1
		}
		target := board.Shift(t.Status, delta)
		if _, err := a.ws.MoveTask(bs.project, t.ID, target); err != nil {
			a.flash = err.Error()
			return a, nil, true
		}
		bs.focus(a.ws.Tasks(bs.project), t.ID)
	case "[", "]":
		if bs.drag.Active() {
			return a, nil, true
		}
		a.cycleBoardProject(key == "]")
	case "n":
		if _, ok := a.ws.Project(bs.project); !ok {
			a.flash = "create a project first"
			return a, nil, true
		}
		cmd := a.openForm(formTask)
		return a, cmd, true
	case "g":
		next, cmd := a.startReport()
		return next, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

// drop completes the drag on the hovered column and returns the flash text.
func (a *App) drop() string {
	bs := &a.board
	slot := bs.drag
	target := bs.status()
	bs.drag = board.DragSlot{}

	moved, err := a.ws.Drop(bs.project, slot, target)
	if err != nil {
		return err.Error()
	}
	if !moved {
		return "task no longer on this board"
	}
	bs.focus(a.ws.Tasks(bs.project), slot.TaskID())
	return "moved to " + target.Label()
}

func (a *App) cycleBoardProject(forward bool) {
	ps := a.ws.Projects()
	if len(ps) == 0 {
		return
	}
	idx := 0
	for i, p := range ps {
		if p.ID == a.board.project {
			idx = i
		}
	}
	if forward {
		idx = (idx + 1) % len(ps)
	} else {
		idx = (idx - 1 + len(ps)) % len(ps)
	}
	a.board = boardState{project: ps[idx].ID}
}

func indexOf(s model.Status) int {
	for i, st := range model.Statuses {
		if st == s {
			return i
		}
	}
	return 0
}

func (a App) renderBoardTab(cw int) string {
	t := theme.Active
	tasks := a.ws.Tasks(a.board.project)
	counts := board.Counts(tasks)

	dragged, dragging := model.Task{}, a.board.drag.Active()
	if dragging {
		dragged, _ = board.Find(tasks, a.board.drag.TaskID())
	}

	widths := components.LayoutRow(cw, len(model.Statuses))
	cols := make([]string, len(model.Statuses))
	for i, st := range model.Statuses {
		inner := components.CardInnerWidth(widths[i])
		focused := i == a.board.col

		titleStyle := lipgloss.NewStyle().Foreground(t.StatusColor(st)).Background(t.Surface).Bold(true)
		mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
		selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
		ghostStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Italic(true)

		var b strings.Builder
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", st.Label(), counts.Of(st))))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(strings.Repeat("─", inner)))
		b.WriteString("\n")

		column := board.Column(tasks, st)
		if dragging && focused && dragged.Status != st {
			b.WriteString(ghostStyle.Render(cli.Truncate("↓ "+dragged.Title, inner)))
			b.WriteString("\n\n")
		}
		if len(column) == 0 && !(dragging && focused) {
			b.WriteString(dimStyle.Render("(empty)"))
			b.WriteString("\n")
		}
		for j, task := range column {
			style := rowStyle
			marker := "  "
			if focused && j == a.board.row && !dragging {
				style = selStyle
				marker = "▸ "
			}
			if dragging && task.ID == dragged.ID {
				marker = "⇡ "
				style = ghostStyle
			}
			b.WriteString(style.Render(cli.Truncate(marker+task.Title, inner)))
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render(cli.Truncate("  "+task.Assignee+" · "+cli.FormatDate(task.DueDate), inner)))
			b.WriteString("\n")
		}
		cols[i] = components.FocusCard("", strings.TrimRight(b.String(), "\n"), widths[i], focused)
	}

	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background).
		Render(" h/l columns · space pick up/drop · < > move · [ ] project · n new task · g report")
	return components.CardRow(cols) + "\n" + hint
}
