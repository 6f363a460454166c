package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pflow/internal/board"
	"github.com/theirongolddev/pflow/internal/config"
	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/pipeline"
	"github.com/theirongolddev/pflow/internal/tui/theme"
)

type formKind int

const (
	formNone formKind = iota
	formSetup
	formProject
	formTask
	formBudget
)

// formValues backs every form field. Only the fields of the open form are
// meaningful.
type formValues struct {
	// setup
	theme    string
	signedIn bool

	// project
	name        string
	description string
	deadline    string

	// task
	title    string
	assignee string
	due      string
	status   model.Status

	// budget item
	concept     string
	entryType   model.EntryType
	amount      string
	responsible string
}

func (a *App) openForm(kind formKind) tea.Cmd {
	a.vals = &formValues{
		theme:     a.cfg.Appearance.Theme,
		signedIn:  a.cfg.Session.Authenticated,
		status:    model.StatusPending,
		entryType: model.EntryExpense,
	}
	a.formKind = kind

	switch kind {
	case formSetup:
		a.form = newSetupForm(a.vals)
	case formProject:
		a.form = newProjectForm(a.vals)
	case formTask:
		a.form = newTaskForm(a.vals)
	case formBudget:
		a.form = newBudgetForm(a.vals)
	default:
		a.closeForm()
		return nil
	}
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.width, 72)).WithHeight(a.height)
	}
	return a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.vals = nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.flash = a.submitForm()
		a.closeForm()
		return a, nil
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}
	return a, cmd
}

// submitForm applies the open form's values and returns the flash message.
// Fields are validated as they are entered, but the domain operation
// validates again and its error wins.
func (a *App) submitForm() string {
	v := a.vals
	switch a.formKind {
	case formSetup:
		a.cfg.Appearance.Theme = v.theme
		a.cfg.Session.Authenticated = v.signedIn
		theme.SetActive(v.theme)
		if err := config.Save(a.cfg); err != nil {
			return "settings apply to this session only: " + err.Error()
		}
		return "saved " + config.ConfigPath()

	case formProject:
		p, err := a.ws.CreateProject(pipeline.NewProject{
			Name:        v.name,
			Description: v.description,
			Deadline:    v.deadline,
		})
		if err != nil {
			return err.Error()
		}
		a.board.project = p.ID
		a.projects.cursor = len(a.ws.Projects()) - 1
		return "created project " + p.Name

	case formTask:
		t, err := a.ws.CreateTask(a.board.project, board.NewTask{
			Title:    v.title,
			Assignee: v.assignee,
			DueDate:  v.due,
			Status:   v.status,
		})
		if err != nil {
			return err.Error()
		}
		a.board.focus(a.ws.Tasks(a.board.project), t.ID)
		return "created task " + t.Title

	case formBudget:
		it, err := a.ws.AddBudgetItem(pipeline.NewItem{
			Concept:     v.concept,
			Type:        string(v.entryType),
			Amount:      v.amount,
			Responsible: v.responsible,
		})
		if err != nil {
			return err.Error()
		}
		a.budget.cursor = len(a.ws.Budget()) - 1
		return fmt.Sprintf("added %s %s", it.Concept, it.Amount)
	}
	return ""
}

func (a App) viewForm() string {
	t := theme.Active
	titles := map[formKind]string{
		formSetup:   "Welcome to pflow",
		formProject: "New project",
		formTask:    "New task",
		formBudget:  "New budget item",
	}
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).MarginBottom(1)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).MarginTop(1)

	body := titleStyle.Render("◈ "+titles[a.formKind]) + "\n" +
		a.form.View() + "\n" +
		hintStyle.Render("esc to cancel")
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// ─── Form builders ──────────────────────────────────────────────

func notBlank(field string) func(string) error {
	return func(s string) error {
		return model.Required(field, s)
	}
}

func validDate(field string) func(string) error {
	return func(s string) error {
		_, err := model.ParseDate(field, s)
		return err
	}
}

func newSetupForm(v *formValues) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.theme),
			huh.NewConfirm().
				Title("Sign in now?").
				Description("The session flag is stored in the config file.").
				Affirmative("Sign in").
				Negative("Later").
				Value(&v.signedIn),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(true)
}

func newProjectForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&v.name).
				Validate(notBlank("name")),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(&v.description).
				Validate(notBlank("description")),
			huh.NewInput().
				Title("Deadline").
				Placeholder(model.DateLayout).
				Value(&v.deadline).
				Validate(validDate("deadline")),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(true)
}

func newTaskForm(v *formValues) *huh.Form {
	statuses := make([]huh.Option[model.Status], len(model.Statuses))
	for i, s := range model.Statuses {
		statuses[i] = huh.NewOption(s.Label(), s)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&v.title).
				Validate(notBlank("title")),
			huh.NewInput().
				Title("Assignee").
				Value(&v.assignee).
				Validate(notBlank("assignee")),
			huh.NewInput().
				Title("Due date").
				Placeholder(model.DateLayout).
				Value(&v.due).
				Validate(validDate("due date")),
			huh.NewSelect[model.Status]().
				Title("Column").
				Options(statuses...).
				Value(&v.status),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(true)
}

func newBudgetForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Concept").
				Value(&v.concept).
				Validate(notBlank("concept")),
			huh.NewSelect[model.EntryType]().
				Title("Type").
				Options(
					huh.NewOption(model.EntryIncome.Label(), model.EntryIncome),
					huh.NewOption(model.EntryExpense.Label(), model.EntryExpense),
				).
				Value(&v.entryType),
			huh.NewInput().
				Title("Amount").
				Placeholder("1500.00").
				Value(&v.amount).
				Validate(func(s string) error {
					_, err := pipeline.ParseAmount(s)
					return err
				}),
			huh.NewInput().
				Title("Responsible").
				Value(&v.responsible).
				Validate(notBlank("responsible")),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(true)
}
