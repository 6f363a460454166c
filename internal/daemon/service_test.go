package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/workspace"
)

var testToday = time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *httptest.Server) {
	t.Helper()
	n := 0
	ws := workspace.New(func() string { n++; return "id" + strconv.Itoa(n) })
	ws.Seed()

	s := New(Config{
		EventsBuffer:  50,
		ReportLatency: 10 * time.Millisecond,
		Today:         func() time.Time { return testToday },
		Logger:        slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}, ws)

	ctx, cancel := context.WithCancel(context.Background())
	go s.Loop(ctx)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return s, srv
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func getState(t *testing.T, srv *httptest.Server) StateResponse {
	t.Helper()
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/state", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("state status = %d", resp.StatusCode)
	}
	var st StateResponse
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("decoding state: %v", err)
	}
	return st
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{EventsBuffer: 2}, workspace.New(nil))
	s.log = slog.New(slog.NewJSONHandler(io.Discard, nil))

	s.publish("a", nil)
	s.publish("b", nil)
	s.publish("c", nil)

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestHealth(t *testing.T) {
	_, srv := newTestService(t)
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK || string(body) != "ok\n" {
		t.Fatalf("healthz = %d %q", resp.StatusCode, body)
	}
}

func TestState(t *testing.T) {
	_, srv := newTestService(t)
	st := getState(t, srv)

	if len(st.Projects) != 3 {
		t.Fatalf("projects = %d, want 3", len(st.Projects))
	}
	if st.Projects[2].Urgency != model.UrgencyActive || st.Projects[2].DaysRemaining != 19 {
		t.Errorf("marketing stats = %+v", st.Projects[2])
	}
	if st.Totals.Balance != 2_950_000 {
		t.Errorf("balance = %d, want 2950000", st.Totals.Balance)
	}
	if st.Status.AsOf != "2024-12-01" {
		t.Errorf("as_of = %q", st.Status.AsOf)
	}
}

func TestCreateAndMoveTask(t *testing.T) {
	_, srv := newTestService(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/tasks",
		`{"project":"Sistema de gestión de inventario","title":"Schema","assignee":"Ana","due_date":"2025-01-10"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d: %s", resp.StatusCode, body)
	}
	var task model.Task
	if err := json.Unmarshal(body, &task); err != nil {
		t.Fatal(err)
	}
	if task.Status != model.StatusPending {
		t.Errorf("status = %q, want pending", task.Status)
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/v1/tasks/"+task.ID+"/status", `{"status":"done"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("move status = %d: %s", resp.StatusCode, body)
	}

	st := getState(t, srv)
	p := st.Projects[1].Project
	if p.TasksCompleted != 1 || p.TotalTasks != 1 || p.Progress != 100 {
		t.Errorf("reconciled project = %d/%d %d%%, want 1/1 100%%", p.TasksCompleted, p.TotalTasks, p.Progress)
	}
}

func TestMoveTask_Errors(t *testing.T) {
	_, srv := newTestService(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/tasks/ghost/status", `{"status":"completed"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown task = %d, want 404", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/tasks/id4/status", `{"status":"blocked"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad status = %d, want 400", resp.StatusCode)
	}
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		t.Fatal(err)
	}
	if er.Error.Code != "VALIDATION_ERROR" || len(er.Error.Details) != 1 || er.Error.Details[0].Field != "status" {
		t.Errorf("error body = %+v", er)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/tasks/id4/status", `{`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body = %d, want 400", resp.StatusCode)
	}
}

func TestCreateTask_Validation(t *testing.T) {
	_, srv := newTestService(t)
	before := getState(t, srv)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/tasks", `{"title":"","assignee":"x","due_date":"2025-01-01"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty title = %d, want 400", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/tasks", `{"project":"nope","title":"x","assignee":"x","due_date":"2025-01-01"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown project = %d, want 404", resp.StatusCode)
	}

	after := getState(t, srv)
	if len(after.Tasks[before.Projects[0].Project.ID]) != 5 {
		t.Error("rejected create changed the board")
	}
}

func TestProjectsAndBudget(t *testing.T) {
	_, srv := newTestService(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/projects",
		`{"name":"Portal","description":"Client portal","deadline":"2024-12-05"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("project status = %d: %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/v1/budget",
		`{"concept":"Hosting","type":"expense","amount":49.5,"responsible":"Ops"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("budget status = %d: %s", resp.StatusCode, body)
	}
	var it model.BudgetItem
	if err := json.Unmarshal(body, &it); err != nil {
		t.Fatal(err)
	}
	if it.Amount != 4950 {
		t.Errorf("amount = %d, want 4950", it.Amount)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/budget",
		`{"concept":"Bad","type":"expense","amount":-1,"responsible":"Ops"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("negative amount = %d, want 400", resp.StatusCode)
	}

	for _, amount := range []string{`"abc"`, `0.285`} {
		resp, body = doJSON(t, http.MethodPost, srv.URL+"/v1/budget",
			`{"concept":"Bad","type":"expense","amount":`+amount+`,"responsible":"Ops"}`)
		var er ErrorResponse
		if err := json.Unmarshal(body, &er); err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest || er.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("amount %s: status %d code %q, want 400 VALIDATION_ERROR", amount, resp.StatusCode, er.Error.Code)
		}
		if len(er.Error.Details) != 1 || er.Error.Details[0].Field != "amount" {
			t.Errorf("amount %s: details = %+v, want the amount field", amount, er.Error.Details)
		}
	}

	st := getState(t, srv)
	if st.Projects[3].Urgency != model.UrgencyUrgent {
		t.Errorf("new project urgency = %q, want urgent", st.Projects[3].Urgency)
	}
	if st.Totals.Expense != 2_550_000+4950 {
		t.Errorf("expense = %d", st.Totals.Expense)
	}

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/v1/budget/"+it.ID, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete = %d, want 204", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/v1/budget/"+it.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", resp.StatusCode)
	}
}

func TestReportGeneration(t *testing.T) {
	_, srv := newTestService(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/reports", `{"project":"Rediseño de aplicación móvil"}`)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("report status = %d: %s", resp.StatusCode, body)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		st := getState(t, srv)
		if len(st.Reports) == 3 {
			if st.Reports[0].ProjectName != "Rediseño de aplicación móvil" {
				t.Errorf("newest report = %q", st.Reports[0].ProjectName)
			}
			if !strings.Contains(st.Reports[0].Content, "Completadas: 1") {
				t.Errorf("report content does not reflect the board:\n%s", st.Reports[0].Content)
			}
			if st.Status.PendingReports != 0 {
				t.Errorf("pending = %d, want 0", st.Status.PendingReports)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("report never arrived")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestEventsAndStream(t *testing.T) {
	_, srv := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/stream", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	lines := bufio.NewScanner(resp.Body)
	next := func() string {
		for lines.Scan() {
			if l := lines.Text(); strings.HasPrefix(l, "event: ") {
				return strings.TrimPrefix(l, "event: ")
			}
		}
		return ""
	}
	if got := next(); got != EventSnapshot {
		t.Fatalf("first event = %q, want snapshot", got)
	}

	r, _ := doJSON(t, http.MethodDelete, srv.URL+"/v1/budget/id9", "")
	if r.StatusCode != http.StatusNoContent {
		t.Fatalf("delete = %d", r.StatusCode)
	}
	if got := next(); got != EventBudgetRemoved {
		t.Fatalf("streamed event = %q, want %s", got, EventBudgetRemoved)
	}

	_, body := doJSON(t, http.MethodGet, srv.URL+"/v1/events", "")
	var events []Event
	if err := json.Unmarshal(body, &events); err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Type != EventBudgetRemoved {
		t.Errorf("events = %+v", events)
	}
}
