// Package report builds the textual project status report and runs its
// simulated generation latency.
package report

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/pipeline"
)

// DefaultProjectName labels reports generated without a project in scope.
const DefaultProjectName = "Nuevo Proyecto"

// DisplayDateLayout is the day/month/year form used inside report bodies.
const DisplayDateLayout = "02/01/2006"

// Snapshot is the input to Synthesize. It is a plain value, so a copy taken
// when generation starts cannot be changed by later board edits.
type Snapshot struct {
	ProjectName string
	Counts      model.StatusCounts
}

// Progress derives the completion percentage from the counts.
func (s Snapshot) Progress() int {
	return pipeline.ComputeProgress(s.Counts.Completed, s.Counts.Total())
}

type reportData struct {
	Date     string
	Project  string
	Counts   model.StatusCounts
	Progress int
	Phase    string
	Analysis string
	Next     []string
	Advice   string
}

var reportTmpl = template.Must(template.New("report").Parse(`# Reporte del Proyecto - {{.Date}}

## Resumen Ejecutivo
{{.Project}} se encuentra en {{.Phase}} con un progreso del {{.Progress}}%.

## Estado de Tareas
- ✅ Completadas: {{.Counts.Completed}}
- 🔄 En progreso: {{.Counts.InProgress}}
- ⏳ Pendientes: {{.Counts.Pending}}

## Análisis de Progreso
{{.Analysis}}

## Próximos Pasos
{{range .Next}}- {{.}}
{{end}}
## Recomendaciones
{{.Advice}}
`))

// Synthesize renders the Markdown report for s as of the given day. It is
// pure: the same snapshot and date always produce the same text.
func Synthesize(s Snapshot, asOf time.Time) (string, error) {
	d := reportData{
		Date:     asOf.Format(DisplayDateLayout),
		Project:  s.ProjectName,
		Counts:   s.Counts,
		Progress: s.Progress(),
	}
	if d.Project == "" {
		d.Project = "El proyecto"
	}
	fillNarrative(&d)

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return buf.String(), nil
}

func fillNarrative(d *reportData) {
	total := d.Counts.Total()
	switch {
	case total == 0:
		d.Phase = "fase de planificación"
		d.Analysis = "Todavía no hay tareas registradas en el tablero."
		d.Advice = "Definir el alcance y crear las primeras tareas del proyecto."
	case d.Progress >= 100:
		d.Phase = "fase de cierre"
		d.Analysis = "Todas las tareas del tablero están completadas."
		d.Advice = "Preparar la entrega final y documentar las lecciones aprendidas."
	case d.Progress >= 67:
		d.Phase = "fase final"
		d.Analysis = "La mayor parte del trabajo está completada y el equipo avanza hacia el cierre."
		d.Advice = "Priorizar las pruebas y la validación con el cliente."
	case d.Progress >= 34:
		d.Phase = "fase de desarrollo activo"
		d.Analysis = "El equipo avanza en la implementación según lo planificado."
		d.Advice = "Mantener el ritmo actual y revisar los bloqueos de las tareas en curso."
	default:
		d.Phase = "fase inicial"
		d.Analysis = "El proyecto está definiendo su base de trabajo."
		d.Advice = "Asignar responsables a las tareas pendientes y fijar hitos intermedios."
	}

	if d.Counts.InProgress > 0 {
		d.Next = append(d.Next, "Cerrar las tareas en progreso antes de iniciar nuevas.")
	}
	if d.Counts.Pending > 0 {
		d.Next = append(d.Next, "Planificar el inicio de las tareas pendientes.")
	}
	if len(d.Next) == 0 {
		d.Next = append(d.Next, "Sin acciones abiertas en el tablero.")
	}
}
