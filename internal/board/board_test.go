package board

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/pflow/internal/model"
)

func seqIDs(prefix string) model.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func day(s string) time.Time {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Wireframes", Assignee: "María García", DueDate: day("2024-12-05"), Status: model.StatusCompleted},
		{ID: "2", Title: "REST API", Assignee: "Carlos López", DueDate: day("2024-12-10"), Status: model.StatusInProgress},
		{ID: "3", Title: "Database integration", Assignee: "Ana Martínez", DueDate: day("2024-12-12"), Status: model.StatusInProgress},
		{ID: "4", Title: "Feature testing", Assignee: "Pedro Sánchez", DueDate: day("2024-12-15"), Status: model.StatusPending},
		{ID: "5", Title: "Technical docs", Assignee: "Laura Fernández", DueDate: day("2024-12-18"), Status: model.StatusPending},
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestTransition_OnlyTargetChanges(t *testing.T) {
	orig := sampleTasks()
	for _, first := range model.Statuses {
		for _, second := range model.Statuses {
			got := Transition(Transition(orig, "4", first), "4", second)

			require.Len(t, got, len(orig))
			assert.Equal(t, ids(orig), ids(got))
			for i := range got {
				if got[i].ID == "4" {
					assert.Equal(t, second, got[i].Status)
					continue
				}
				assert.Equal(t, orig[i], got[i], "untargeted task %s changed", got[i].ID)
			}
		}
	}
}

func TestTransition_AnyToAny(t *testing.T) {
	tasks := sampleTasks()
	// completed back to pending is allowed; the board is not forward-only
	got := Transition(tasks, "1", model.StatusPending)
	assert.Equal(t, model.StatusPending, got[0].Status)
}

func TestTransition_UnknownIDIsNoop(t *testing.T) {
	tasks := sampleTasks()
	got := Transition(tasks, "does-not-exist", model.StatusCompleted)
	assert.Equal(t, tasks, got)
}

func TestTransition_InvalidStatusIsNoop(t *testing.T) {
	tasks := sampleTasks()
	got := Transition(tasks, "2", model.Status("blocked"))
	assert.Equal(t, tasks, got)
}

func TestTransition_DoesNotAliasInput(t *testing.T) {
	tasks := sampleTasks()
	got := Transition(tasks, "5", model.StatusCompleted)
	assert.Equal(t, model.StatusPending, tasks[4].Status, "input mutated")
	assert.Equal(t, model.StatusCompleted, got[4].Status)
}

func TestDropOnColumn(t *testing.T) {
	tasks := sampleTasks()

	slot := BeginDrag("3")
	require.True(t, slot.Active())
	assert.Equal(t, "3", slot.TaskID())

	got := DropOnColumn(tasks, slot, model.StatusCompleted)
	task, ok := Find(got, "3")
	require.True(t, ok)
	assert.Equal(t, model.StatusCompleted, task.Status)

	// a drop with no drag in progress leaves the board alone
	assert.Equal(t, tasks, DropOnColumn(tasks, DragSlot{}, model.StatusCompleted))
}

func TestCreateTask(t *testing.T) {
	newID := seqIDs("task")
	tasks := sampleTasks()

	got, err := CreateTask(tasks, NewTask{
		Title:    " Deploy ",
		Assignee: "DevOps Team",
		DueDate:  "2025-01-10",
		Status:   model.StatusInProgress,
	}, newID)
	require.NoError(t, err)
	require.Len(t, got, 6)
	assert.Len(t, tasks, 5, "input grew")

	last := got[5]
	assert.Equal(t, "task-1", last.ID)
	assert.Equal(t, "Deploy", last.Title)
	assert.Equal(t, model.StatusInProgress, last.Status)
	assert.Equal(t, day("2025-01-10"), last.DueDate)

	got, err = CreateTask(got, NewTask{Title: "Retro", Assignee: "Team", DueDate: "2025-01-11"}, newID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got[6].Status, "empty status defaults to pending")
	assert.NotEqual(t, got[5].ID, got[6].ID)
}

func TestCreateTask_ValidationLeavesCollection(t *testing.T) {
	tasks := sampleTasks()
	cases := []NewTask{
		{Title: "", Assignee: "x", DueDate: "2025-01-01", Status: model.StatusPending},
		{Title: "x", Assignee: "  ", DueDate: "2025-01-01"},
		{Title: "x", Assignee: "y", DueDate: "01/01/2025"},
		{Title: "x", Assignee: "y", DueDate: "2025-01-01", Status: "archived"},
	}
	for _, in := range cases {
		got, err := CreateTask(tasks, in, seqIDs("t"))
		require.ErrorIs(t, err, model.ErrValidation, "input %+v", in)
		assert.Equal(t, tasks, got)
	}
}

func TestCountsAndColumns(t *testing.T) {
	tasks := sampleTasks()
	c := Counts(tasks)
	assert.Equal(t, model.StatusCounts{Completed: 1, InProgress: 2, Pending: 2}, c)
	assert.Equal(t, 5, c.Total())

	assert.Equal(t, []string{"2", "3"}, ids(Column(tasks, model.StatusInProgress)))
	assert.Empty(t, Column(nil, model.StatusPending))
}

func TestShift(t *testing.T) {
	assert.Equal(t, model.StatusInProgress, Shift(model.StatusPending, 1))
	assert.Equal(t, model.StatusCompleted, Shift(model.StatusPending, 5))
	assert.Equal(t, model.StatusPending, Shift(model.StatusInProgress, -1))
	assert.Equal(t, model.StatusPending, Shift(model.StatusPending, -1))
}
