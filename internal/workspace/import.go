package workspace

import (
	"fmt"

	"github.com/theirongolddev/pflow/internal/board"
	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/pipeline"
	"github.com/theirongolddev/pflow/internal/source"
)

// ImportResult tallies a batch import.
type ImportResult struct {
	Projects int
	Tasks    int
	Budget   int
	Rejected []error
}

// Applied returns the number of records that passed validation.
func (r ImportResult) Applied() int {
	return r.Projects + r.Tasks + r.Budget
}

// Import applies records in order through the same validated operations the
// forms use. This is where a record's kind is checked; the parser does not. A rejected record is reported and skipped; it never stops the
// batch. Task records may name a project created earlier in the same batch.
func (w *Workspace) Import(records []source.Record) ImportResult {
	var res ImportResult
	for _, rec := range records {
		if err := w.apply(rec); err != nil {
			res.Rejected = append(res.Rejected, fmt.Errorf("line %d (%s): %w", rec.Line, rec.Kind, err))
			continue
		}
		switch rec.Kind {
		case source.KindProject:
			res.Projects++
		case source.KindTask:
			res.Tasks++
		case source.KindBudget:
			res.Budget++
		}
	}
	return res
}

func (w *Workspace) apply(rec source.Record) error {
	switch rec.Kind {
	case source.KindProject:
		_, err := w.CreateProject(pipeline.NewProject{
			Name:        rec.Name,
			Description: rec.Description,
			Deadline:    rec.Deadline,
		})
		return err

	case source.KindTask:
		p, err := w.ResolveProject(rec.Project)
		if err != nil {
			return fmt.Errorf("%q: %w", rec.Project, err)
		}
		var status model.Status
		if rec.Status != "" {
			if status, err = model.ParseStatus(rec.Status); err != nil {
				return err
			}
		}
		_, err = w.CreateTask(p.ID, board.NewTask{
			Title:    rec.Title,
			Assignee: rec.Assignee,
			DueDate:  rec.Due,
			Status:   status,
		})
		return err

	case source.KindBudget:
		_, err := w.AddBudgetItem(pipeline.NewItem{
			Concept:     rec.Concept,
			Type:        rec.Type,
			Amount:      string(rec.Amount),
			Responsible: rec.Responsible,
		})
		return err
	}
	if rec.Kind == "" {
		return model.Invalid("kind", "is required")
	}
	return model.Invalid("kind", fmt.Sprintf("must be project, task, or budget, not %q", rec.Kind))
}
