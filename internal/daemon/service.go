// Package daemon serves the workspace over a local HTTP JSON API with a
// server-sent event stream of changes.
//
// The workspace, the event ring, and the subscriber set are owned by a single
// event-loop goroutine. HTTP handlers never touch them directly: they submit
// closures to the loop and wait for them to finish.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/theirongolddev/pflow/internal/model"
	"github.com/theirongolddev/pflow/internal/report"
	"github.com/theirongolddev/pflow/internal/workspace"
)

// ErrStopped is returned when a request arrives after the loop has exited.
var ErrStopped = errors.New("daemon stopped")

// Config controls the daemon runtime behavior.
type Config struct {
	Addr          string
	EventsBuffer  int
	ReportLatency time.Duration
	Today         func() time.Time
	Logger        *slog.Logger
}

// Event is emitted whenever the workspace changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// Event types.
const (
	EventSnapshot        = "snapshot"
	EventProjectCreated  = "project.created"
	EventTaskCreated     = "task.created"
	EventTaskMoved       = "task.moved"
	EventBudgetAdded     = "budget.added"
	EventBudgetRemoved   = "budget.removed"
	EventReportRequested = "report.requested"
	EventReportCreated   = "report.created"
	EventReportFailed    = "report.failed"
)

// Status is the service-level part of /v1/state.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	AsOf            string    `json:"as_of"`
	PendingReports  int       `json:"pending_reports"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	log *slog.Logger

	ops     chan func()
	stopped chan struct{}
	baseCtx context.Context

	// loop-owned
	ws             *workspace.Workspace
	startedAt      time.Time
	nextEventID    int64
	events         []Event
	nextSubID      int
	subs           map[int]chan Event
	pendingReports int
}

// New returns a service that owns ws.
func New(cfg Config, ws *workspace.Workspace) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8797"
	}
	if cfg.Today == nil {
		cfg.Today = func() time.Time { return model.DateOf(time.Now()) }
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Service{
		cfg:       cfg,
		log:       cfg.Logger,
		ops:       make(chan func()),
		stopped:   make(chan struct{}),
		baseCtx:   context.Background(),
		ws:        ws,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and the event loop until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		s.Loop(ctx)
	}()

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("pflow daemon listening", slog.String("addr", s.cfg.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		<-loopDone
		return err
	case err := <-errCh:
		return fmt.Errorf("daemon http server: %w", err)
	}
}

// Loop applies submitted operations one at a time until ctx is canceled.
// Run calls it; tests drive it directly alongside Handler.
func (s *Service) Loop(ctx context.Context) {
	s.baseCtx = ctx
	defer close(s.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-s.ops:
			fn()
		}
	}
}

// do runs fn on the loop goroutine and waits for it to finish.
func (s *Service) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	op := func() {
		fn()
		close(done)
	}
	select {
	case s.ops <- op:
	case <-s.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post queues fn on the loop without waiting. Used by background work whose
// results must re-enter the loop.
func (s *Service) post(fn func()) {
	select {
	case s.ops <- fn:
	case <-s.stopped:
	}
}

// publish appends ev to the ring buffer and fans it out. Loop-only.
func (s *Service) publish(typ string, data any) {
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      typ,
		Timestamp: time.Now(),
		Data:      data,
	}
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.log.Info("workspace changed", slog.String("event", typ), slog.Int64("event_id", ev.ID))
}

// status builds the service status. Loop-only.
func (s *Service) status() Status {
	return Status{
		StartedAt:       s.startedAt,
		AsOf:            model.FormatDate(s.cfg.Today()),
		PendingReports:  s.pendingReports,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

// requestReport starts an independent generation for snap. Loop-only. The
// result is posted back to the loop, which records it and publishes.
func (s *Service) requestReport(snap report.Snapshot) {
	asOf := s.cfg.Today()
	s.pendingReports++
	s.publish(EventReportRequested, map[string]string{"project_name": snap.ProjectName})

	ch := report.GenerateAsync(s.baseCtx, snap, asOf, s.cfg.ReportLatency)
	go func() {
		res := <-ch
		s.post(func() {
			s.pendingReports--
			if res.Err != nil {
				s.log.Warn("report generation failed",
					slog.String("project_name", snap.ProjectName),
					slog.String("error", res.Err.Error()))
				s.publish(EventReportFailed, map[string]string{"project_name": snap.ProjectName, "error": res.Err.Error()})
				return
			}
			r := s.ws.AddReport(snap, res.Value, asOf)
			s.publish(EventReportCreated, r)
		})
	}()
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	delete(s.subs, id)
}
