package report

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"text/template"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/pflow/internal/model"
)

var asOf = time.Date(2024, 11, 28, 0, 0, 0, 0, time.UTC)

func mustSynthesize(t *testing.T, s Snapshot, day time.Time) string {
	t.Helper()
	out, err := Synthesize(s, day)
	require.NoError(t, err)
	return out
}

func TestSynthesize_EmbedsCountsProgressAndDate(t *testing.T) {
	s := Snapshot{
		ProjectName: "Rediseño de aplicación móvil",
		Counts:      model.StatusCounts{Completed: 13, InProgress: 5, Pending: 2},
	}
	out := mustSynthesize(t, s, asOf)

	for _, want := range []string{
		"# Reporte del Proyecto - 28/11/2024",
		"progreso del 65%",
		"Completadas: 13",
		"En progreso: 5",
		"Pendientes: 2",
		"## Próximos Pasos",
		"## Recomendaciones",
		"Rediseño de aplicación móvil",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	s := Snapshot{Counts: model.StatusCounts{Completed: 1, InProgress: 1, Pending: 1}}
	assert.Equal(t, mustSynthesize(t, s, asOf), mustSynthesize(t, s, asOf))
}

func TestSynthesize_EmptyBoard(t *testing.T) {
	out := mustSynthesize(t, Snapshot{}, asOf)
	assert.Contains(t, out, "progreso del 0%")
	assert.Contains(t, out, "Completadas: 0")
	assert.Contains(t, out, "El proyecto")
}

func TestSynthesize_Phases(t *testing.T) {
	tests := []struct {
		counts model.StatusCounts
		phase  string
	}{
		{model.StatusCounts{Pending: 10}, "fase inicial"},
		{model.StatusCounts{Completed: 5, Pending: 5}, "fase de desarrollo activo"},
		{model.StatusCounts{Completed: 9, Pending: 1}, "fase final"},
		{model.StatusCounts{Completed: 4}, "fase de cierre"},
	}
	for _, tt := range tests {
		out := mustSynthesize(t, Snapshot{Counts: tt.counts}, asOf)
		assert.True(t, strings.Contains(out, tt.phase), "counts %+v: missing %q", tt.counts, tt.phase)
	}
}

func TestAfter_RespectsLatency(t *testing.T) {
	const latency = 50 * time.Millisecond
	start := time.Now()
	res := <-After(context.Background(), latency, func() (int, error) { return 42, nil })
	elapsed := time.Since(start)

	require.NoError(t, res.Err)
	assert.Equal(t, 42, res.Value)
	assert.GreaterOrEqual(t, elapsed, latency)
}

func TestAfter_ResolvesExactlyOnce(t *testing.T) {
	ch := After(context.Background(), time.Millisecond, func() (string, error) { return "done", nil })

	var n int
	for range ch {
		n++
	}
	assert.Equal(t, 1, n)
}

func TestAfter_ProduceError(t *testing.T) {
	boom := errors.New("boom")
	res := <-After(context.Background(), time.Millisecond, func() (string, error) { return "", boom })
	assert.ErrorIs(t, res.Err, boom)
	assert.Empty(t, res.Value)
}

func TestSynthesize_TemplateError(t *testing.T) {
	orig := reportTmpl
	t.Cleanup(func() { reportTmpl = orig })
	reportTmpl = template.Must(template.New("report").Parse(`{{.Missing}}`))

	_, err := Synthesize(Snapshot{ProjectName: "P"}, asOf)
	assert.ErrorContains(t, err, "rendering report")
}

func TestAfter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	called := false
	ch := After(ctx, time.Hour, func() (int, error) { called = true; return 1, nil })
	cancel()

	select {
	case res := <-ch:
		assert.True(t, errors.Is(res.Err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("cancelled After did not resolve")
	}
	_, open := <-ch
	assert.False(t, open)
	assert.False(t, called)
}

func TestGenerateAsync_Independent(t *testing.T) {
	a := Snapshot{ProjectName: "A", Counts: model.StatusCounts{Completed: 1, Pending: 1}}
	b := Snapshot{ProjectName: "B", Counts: model.StatusCounts{Completed: 2}}

	var wg sync.WaitGroup
	results := make([]Result[string], 2)
	for i, s := range []Snapshot{a, b} {
		wg.Add(1)
		ch := GenerateAsync(context.Background(), s, asOf, 10*time.Millisecond)
		go func() {
			defer wg.Done()
			results[i] = <-ch
		}()
	}
	wg.Wait()

	require.NoError(t, results[0].Err)
	require.NoError(t, results[1].Err)
	assert.Equal(t, mustSynthesize(t, a, asOf), results[0].Value)
	assert.Equal(t, mustSynthesize(t, b, asOf), results[1].Value)
}

func TestGenerateAsync_SnapshotCapturedAtCall(t *testing.T) {
	s := Snapshot{ProjectName: "P", Counts: model.StatusCounts{Completed: 1}}
	ch := GenerateAsync(context.Background(), s, asOf, 10*time.Millisecond)
	s.Counts.Completed = 99

	res := <-ch
	assert.Contains(t, res.Value, "Completadas: 1")
}

func TestRequester_Supersedes(t *testing.T) {
	r := NewRequester(time.Hour)
	firstSeq, first := r.Start(context.Background(), Snapshot{ProjectName: "old"}, asOf)
	require.True(t, r.Pending())

	r.Latency = time.Millisecond
	secondSeq, second := r.Start(context.Background(), Snapshot{ProjectName: "new"}, asOf)
	assert.Greater(t, secondSeq, firstSeq)

	stale := <-first
	assert.ErrorIs(t, stale.Err, context.Canceled)
	assert.False(t, r.Finish(stale), "stale reply accepted")
	assert.True(t, r.Pending())

	fresh := <-second
	require.NoError(t, fresh.Err)
	assert.True(t, r.Finish(fresh))
	assert.False(t, r.Pending())
	assert.Contains(t, fresh.Content, "new")
}

func TestRequester_Cancel(t *testing.T) {
	r := NewRequester(time.Hour)
	_, ch := r.Start(context.Background(), Snapshot{}, asOf)
	r.Cancel()
	assert.False(t, r.Pending())

	rep := <-ch
	assert.ErrorIs(t, rep.Err, context.Canceled)
}

func TestPrependAndSummarize(t *testing.T) {
	day := func(s string) time.Time {
		d, _ := time.Parse(model.DateLayout, s)
		return d
	}
	history := []model.Report{
		{ID: "1", Date: day("2024-11-28")},
		{ID: "2", Date: day("2024-11-20")},
	}
	next := Prepend(history, model.Report{ID: "3", Date: day("2024-12-02")})

	require.Len(t, next, 3)
	assert.Equal(t, "3", next[0].ID)
	assert.Len(t, history, 2)

	stats := Summarize(next, day("2024-11-30"))
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ThisMonth)
	assert.Equal(t, day("2024-12-02"), stats.Latest)

	got, ok := Find(next, "2")
	assert.True(t, ok)
	assert.Equal(t, "2", got.ID)
	assert.True(t, Summarize(nil, asOf).Latest.IsZero())
}
