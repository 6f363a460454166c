package store

import (
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/theirongolddev/pflow/internal/workspace"
)

func seededState(t *testing.T) workspace.State {
	t.Helper()
	n := 0
	w := workspace.New(func() string { n++; return "id" + strconv.Itoa(n) })
	w.Seed()
	return w.State()
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "pflow.db")
	asOf := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	sum, err := Export(path, seededState(t), asOf)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if sum.Projects != 3 || sum.Tasks != 5 || sum.Budget != 5 || sum.Reports != 2 {
		t.Errorf("Summary = %+v, want 3/5/5/2", sum)
	}

	e, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	var balance int64
	err = e.db.QueryRow(`SELECT
		COALESCE(SUM(CASE WHEN type = 'income' THEN amount_cents ELSE -amount_cents END), 0)
		FROM budget_items`).Scan(&balance)
	if err != nil {
		t.Fatal(err)
	}
	if balance != 2_950_000 {
		t.Errorf("balance = %d, want 2950000", balance)
	}

	var urgency string
	if err := e.db.QueryRow(`SELECT urgency FROM projects WHERE name = 'Campaña de marketing digital'`).Scan(&urgency); err != nil {
		t.Fatal(err)
	}
	if urgency != "active" {
		t.Errorf("urgency = %q, want active (19 days out)", urgency)
	}
}

func TestExport_Replaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pflow.db")
	asOf := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	st := seededState(t)

	if _, err := Export(path, st, asOf); err != nil {
		t.Fatal(err)
	}
	st.Budget = st.Budget[:2]
	sum, err := Export(path, st, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Budget != 2 {
		t.Errorf("Budget = %d, want 2", sum.Budget)
	}

	e, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	var n int
	if err := e.db.QueryRow(`SELECT COUNT(*) FROM budget_items`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("rows = %d, want 2 after re-export", n)
	}
}
