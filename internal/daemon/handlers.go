package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/theirongolddev/pflow/internal/board"
	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/pipeline"
	"github.com/theirongolddev/pflow/internal/source"
	"github.com/theirongolddev/pflow/internal/workspace"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// StateResponse is served at /v1/state.
type StateResponse struct {
	Status   Status                  `json:"status"`
	Projects []model.ProjectStats    `json:"projects"`
	Tasks    map[string][]model.Task `json:"tasks"`
	Budget   []model.BudgetItem      `json:"budget"`
	Totals   model.LedgerTotals      `json:"totals"`
	Reports  []model.Report          `json:"reports"`
}

type createTaskRequest struct {
	Project  string `json:"project"`
	Title    string `json:"title"`
	Assignee string `json:"assignee"`
	DueDate  string `json:"due_date"`
	Status   string `json:"status"`
}

type moveTaskRequest struct {
	Project string `json:"project"`
	Status  string `json:"status"`
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

type addBudgetRequest struct {
	Concept     string        `json:"concept"`
	Type        string        `json:"type"`
	Amount      source.Amount `json:"amount"`
	Responsible string        `json:"responsible"`
}

type reportRequest struct {
	Project string `json:"project"`
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/state", s.handleState)
	mux.HandleFunc("POST /v1/projects", s.handleCreateProject)
	mux.HandleFunc("POST /v1/tasks", s.handleCreateTask)
	mux.HandleFunc("POST /v1/tasks/{id}/status", s.handleMoveTask)
	mux.HandleFunc("POST /v1/budget", s.handleAddBudget)
	mux.HandleFunc("DELETE /v1/budget/{id}", s.handleRemoveBudget)
	mux.HandleFunc("POST /v1/reports", s.handleReport)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	return mux
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		badRequest(w, fmt.Sprintf("malformed JSON body: %v", err))
		return false
	}
	return true
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleState(w http.ResponseWriter, r *http.Request) {
	var resp StateResponse
	err := s.do(r.Context(), func() {
		st := s.ws.State()
		resp = StateResponse{
			Status:   s.status(),
			Projects: pipeline.AggregateProjects(st.Projects, s.cfg.Today()),
			Tasks:    st.Tasks,
			Budget:   st.Budget,
			Totals:   st.Totals,
			Reports:  st.Reports,
		}
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if !decode(w, r, &req) {
		return
	}

	var (
		p     model.Project
		opErr error
	)
	err := s.do(r.Context(), func() {
		p, opErr = s.ws.CreateProject(pipeline.NewProject{
			Name:        req.Name,
			Description: req.Description,
			Deadline:    req.Deadline,
		})
		if opErr == nil {
			s.publish(EventProjectCreated, p)
		}
	})
	if err == nil {
		err = opErr
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Service) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if !decode(w, r, &req) {
		return
	}
	var status model.Status
	if req.Status != "" {
		var err error
		if status, err = model.ParseStatus(req.Status); err != nil {
			writeDomainError(w, r, err)
			return
		}
	}

	var (
		t     model.Task
		opErr error
	)
	err := s.do(r.Context(), func() {
		p, err := s.ws.ResolveProject(req.Project)
		if err != nil {
			opErr = err
			return
		}
		t, opErr = s.ws.CreateTask(p.ID, board.NewTask{
			Title:    req.Title,
			Assignee: req.Assignee,
			DueDate:  req.DueDate,
			Status:   status,
		})
		if opErr == nil {
			s.publish(EventTaskCreated, map[string]any{"project_id": p.ID, "task": t})
		}
	})
	if err == nil {
		err = opErr
	}
	switch {
	case errors.Is(err, workspace.ErrProjectNotFound):
		notFound(w, "project")
	case err != nil:
		writeDomainError(w, r, err)
	default:
		writeJSON(w, http.StatusCreated, t)
	}
}

func (s *Service) handleMoveTask(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("id")
	var req moveTaskRequest
	if !decode(w, r, &req) {
		return
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var (
		task  model.Task
		found bool
		opErr error
	)
	err = s.do(r.Context(), func() {
		projectID := req.Project
		if projectID == "" {
			projectID, found = s.ws.TaskProject(taskID)
			if !found {
				return
			}
		} else {
			p, err := s.ws.ResolveProject(projectID)
			if err != nil {
				opErr = err
				return
			}
			projectID = p.ID
		}
		found, opErr = s.ws.MoveTask(projectID, taskID, status)
		if found {
			task, _ = board.Find(s.ws.Tasks(projectID), taskID)
			s.publish(EventTaskMoved, map[string]any{"project_id": projectID, "task": task})
		}
	})
	if err == nil {
		err = opErr
	}
	switch {
	case errors.Is(err, workspace.ErrProjectNotFound):
		notFound(w, "project")
	case err != nil:
		writeDomainError(w, r, err)
	case !found:
		notFound(w, "task")
	default:
		writeJSON(w, http.StatusOK, task)
	}
}

func (s *Service) handleAddBudget(w http.ResponseWriter, r *http.Request) {
	var req addBudgetRequest
	if !decode(w, r, &req) {
		return
	}

	var (
		it    model.BudgetItem
		opErr error
	)
	err := s.do(r.Context(), func() {
		it, opErr = s.ws.AddBudgetItem(pipeline.NewItem{
			Concept:     req.Concept,
			Type:        req.Type,
			Amount:      string(req.Amount),
			Responsible: req.Responsible,
		})
		if opErr == nil {
			s.publish(EventBudgetAdded, map[string]any{"item": it, "totals": s.ws.Totals()})
		}
	})
	if err == nil {
		err = opErr
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (s *Service) handleRemoveBudget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var removed bool
	err := s.do(r.Context(), func() {
		removed = s.ws.RemoveBudgetItem(id)
		if removed {
			s.publish(EventBudgetRemoved, map[string]any{"id": id, "totals": s.ws.Totals()})
		}
	})
	switch {
	case err != nil:
		writeDomainError(w, r, err)
	case !removed:
		notFound(w, "budget item")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Service) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}

	var opErr error
	var pending int
	err := s.do(r.Context(), func() {
		projectID := ""
		if req.Project != "" {
			p, err := s.ws.ResolveProject(req.Project)
			if err != nil {
				opErr = err
				return
			}
			projectID = p.ID
		}
		snap, err := s.ws.ReportSnapshot(projectID)
		if err != nil {
			opErr = err
			return
		}
		s.requestReport(snap)
		pending = s.pendingReports
	})
	if err == nil {
		err = opErr
	}
	switch {
	case errors.Is(err, workspace.ErrProjectNotFound):
		notFound(w, "project")
	case err != nil:
		writeDomainError(w, r, err)
	default:
		writeJSON(w, http.StatusAccepted, map[string]any{"status": "pending", "pending_reports": pending})
	}
}

func (s *Service) handleEvents(w http.ResponseWriter, r *http.Request) {
	var events []Event
	err := s.do(r.Context(), func() {
		events = make([]Event, len(s.events))
		copy(events, s.events)
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch := make(chan Event, 16)
	var (
		id      int
		current Event
	)
	err := s.do(r.Context(), func() {
		id = s.addSubscriber(ch)
		current = Event{
			Type:      EventSnapshot,
			Timestamp: time.Now(),
			Data:      s.status(),
		}
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	defer func() {
		_ = s.do(context.Background(), func() { s.removeSubscriber(id) })
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if ev.ID > 0 {
		_, _ = fmt.Fprintf(w, "id: %d\n", ev.ID)
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}
