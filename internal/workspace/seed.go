package workspace

import (
	"time"

	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/pipeline"
	"github.com/theirongolddev/pflow/internal/report"
)

type seedProject struct {
	name, description, deadline string
	completed, total           int
}

var seedProjects = []seedProject{
	{"Rediseño de aplicación móvil", "Actualización completa de la interfaz de usuario", "2025-01-15", 13, 20},
	{"Sistema de gestión de inventario", "Desarrollo de plataforma web para control de stock", "2025-02-28", 6, 20},
	{"Campaña de marketing digital", "Estrategia integral para redes sociales y ads", "2024-12-20", 17, 20},
}

// Seed tasks all sit on the first project's board.
var seedTasks = []struct {
	title, assignee, due string
	status               model.Status
}{
	{"Diseño de wireframes", "María García", "2024-12-05", model.StatusCompleted},
	{"Desarrollo de API REST", "Carlos López", "2024-12-10", model.StatusInProgress},
	{"Integración de base de datos", "Ana Martínez", "2024-12-12", model.StatusInProgress},
	{"Testing de funcionalidades", "Pedro Sánchez", "2024-12-15", model.StatusPending},
	{"Documentación técnica", "Laura Fernández", "2024-12-18", model.StatusPending},
}

var seedBudget = []struct {
	concept     string
	typ         model.EntryType
	amount      model.Cents
	responsible string
}{
	{"Desarrollo de software", model.EntryExpense, 1_500_000, "Carlos López"},
	{"Diseño UI/UX", model.EntryExpense, 800_000, "María García"},
	{"Pago del cliente - Fase 1", model.EntryIncome, 3_000_000, "Cliente A"},
	{"Infraestructura cloud", model.EntryExpense, 250_000, "DevOps Team"},
	{"Pago del cliente - Fase 2", model.EntryIncome, 2_500_000, "Cliente A"},
}

var seedReports = []struct {
	project string
	date    string
	counts  model.StatusCounts
}{
	{"Rediseño de aplicación móvil", "2024-11-28", model.StatusCounts{Completed: 13, InProgress: 5, Pending: 2}},
	{"Sistema de gestión de inventario", "2024-11-20", model.StatusCounts{Completed: 6, InProgress: 8, Pending: 6}},
}

// Seed replaces every collection with the default dashboard data. Project
// counters keep their recorded snapshot until the project's board changes.
func (w *Workspace) Seed() {
	w.projects = make([]model.Project, 0, len(seedProjects))
	for _, sp := range seedProjects {
		w.projects = append(w.projects, model.Project{
			ID:             w.newID(),
			Name:           sp.name,
			Description:    sp.description,
			Deadline:       mustDate(sp.deadline),
			Progress:       pipeline.ComputeProgress(sp.completed, sp.total),
			TasksCompleted: sp.completed,
			TotalTasks:     sp.total,
		})
	}

	tasks := make([]model.Task, 0, len(seedTasks))
	for _, st := range seedTasks {
		tasks = append(tasks, model.Task{
			ID:       w.newID(),
			Title:    st.title,
			Assignee: st.assignee,
			DueDate:  mustDate(st.due),
			Status:   st.status,
		})
	}
	w.tasks = map[string][]model.Task{w.projects[0].ID: tasks}

	w.budget = make([]model.BudgetItem, 0, len(seedBudget))
	for _, sb := range seedBudget {
		w.budget = append(w.budget, model.BudgetItem{
			ID:          w.newID(),
			Concept:     sb.concept,
			Type:        sb.typ,
			Amount:      sb.amount,
			Responsible: sb.responsible,
		})
	}

	w.reports = make([]model.Report, 0, len(seedReports))
	for _, sr := range seedReports {
		date := mustDate(sr.date)
		s := report.Snapshot{ProjectName: sr.project, Counts: sr.counts}
		w.reports = append(w.reports, model.Report{
			ID:          w.newID(),
			ProjectName: sr.project,
			Date:        date,
			Content:     mustSynthesize(s, date),
		})
	}
}

func mustSynthesize(s report.Snapshot, date time.Time) string {
	out, err := report.Synthesize(s, date)
	if err != nil {
		panic(err)
	}
	return out
}

func mustDate(s string) time.Time {
	d, err := model.ParseDate("seed", s)
	if err != nil {
		panic(err)
	}
	return d
}
