// Package store writes one-way SQLite snapshots of the workspace. Nothing in
// pflow reads a snapshot back; each export replaces the file's contents.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/pipeline"
	"github.com/theirongolddev/pflow/internal/workspace"
)

// Exporter writes workspace snapshots to a SQLite file.
type Exporter struct {
	db *sql.DB
}

// Open opens or creates the export database at the given path.
func Open(dbPath string) (*Exporter, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening export db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Exporter{db: db}, nil
}

// Close closes the export database.
func (e *Exporter) Close() error {
	return e.db.Close()
}

// Summary counts the rows in the last written snapshot.
type Summary struct {
	Projects int
	Tasks    int
	Budget   int
	Reports  int
}

// Write replaces the database contents with st. Project rows carry the
// deadline metrics as of asOf. The whole snapshot is one transaction.
func (e *Exporter) Write(st workspace.State, asOf time.Time) (Summary, error) {
	var sum Summary

	tx, err := e.db.Begin()
	if err != nil {
		return sum, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"tasks", "projects", "budget_items", "reports", "export_meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return sum, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO export_meta (id, exported_at, as_of) VALUES (1, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), model.FormatDate(asOf)); err != nil {
		return sum, fmt.Errorf("writing meta: %w", err)
	}

	for _, ps := range pipeline.AggregateProjects(st.Projects, asOf) {
		p := ps.Project
		_, err := tx.Exec(`INSERT INTO projects
			(project_id, name, description, deadline, progress, tasks_completed,
			 total_tasks, days_remaining, urgency)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Description, model.FormatDate(p.Deadline), p.Progress,
			p.TasksCompleted, p.TotalTasks, ps.DaysRemaining, string(ps.Urgency),
		)
		if err != nil {
			return sum, fmt.Errorf("writing project %s: %w", p.ID, err)
		}
		sum.Projects++

		for _, t := range st.Tasks[p.ID] {
			_, err := tx.Exec(`INSERT INTO tasks
				(task_id, project_id, title, assignee, due_date, status)
				VALUES (?, ?, ?, ?, ?, ?)`,
				t.ID, p.ID, t.Title, t.Assignee, model.FormatDate(t.DueDate), string(t.Status),
			)
			if err != nil {
				return sum, fmt.Errorf("writing task %s: %w", t.ID, err)
			}
			sum.Tasks++
		}
	}

	for i, it := range st.Budget {
		_, err := tx.Exec(`INSERT INTO budget_items
			(item_id, position, concept, type, amount_cents, responsible)
			VALUES (?, ?, ?, ?, ?, ?)`,
			it.ID, i, it.Concept, string(it.Type), int64(it.Amount), it.Responsible,
		)
		if err != nil {
			return sum, fmt.Errorf("writing budget item %s: %w", it.ID, err)
		}
		sum.Budget++
	}

	for i, r := range st.Reports {
		_, err := tx.Exec(`INSERT INTO reports
			(report_id, position, project_name, report_date, content)
			VALUES (?, ?, ?, ?, ?)`,
			r.ID, i, r.ProjectName, model.FormatDate(r.Date), r.Content,
		)
		if err != nil {
			return sum, fmt.Errorf("writing report %s: %w", r.ID, err)
		}
		sum.Reports++
	}

	if err := tx.Commit(); err != nil {
		return sum, fmt.Errorf("committing export: %w", err)
	}
	return sum, nil
}

// Export writes st to the SQLite file at path in one call.
func Export(path string, st workspace.State, asOf time.Time) (Summary, error) {
	e, err := Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer func() { _ = e.Close() }()
	return e.Write(st, asOf)
}
