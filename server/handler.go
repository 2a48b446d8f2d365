// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/colours93/a2a"
	"github.com/colours93/a2a/agentexecutor"
	"github.com/colours93/a2a/auth"
	"github.com/colours93/a2a/eventqueue"
	"github.com/colours93/a2a/taskstore"
	"github.com/colours93/a2a/taskupdater"
)

// RequestHandler dispatches the six A2A JSON-RPC methods to a Store and
// an AgentExecutor (§4.6). It is transport-agnostic: [HTTPHandler] adapts
// it to JSON-RPC-over-HTTP with SSE streaming.
type RequestHandler interface {
	OnMessageSend(ctx context.Context, params a2a.MessageSendParams) (*a2a.Task, error)
	OnMessageStream(ctx context.Context, params a2a.MessageSendParams) (<-chan a2a.StreamResponse, error)
	OnTasksGet(ctx context.Context, params a2a.TaskQueryParams) (*a2a.Task, error)
	OnTasksList(ctx context.Context, params a2a.TaskListParams) (a2a.TaskListResult, error)
	OnTasksCancel(ctx context.Context, params a2a.TaskIDParams) (*a2a.Task, error)
	OnTasksSubscribe(ctx context.Context, params a2a.TaskQueryParams) (<-chan a2a.StreamResponse, error)
}

// DefaultRequestHandler is the reference RequestHandler: it owns task
// persistence and event-queue lifecycle and delegates business logic to
// an AgentExecutor (§4.6).
type DefaultRequestHandler struct {
	Executor agentexecutor.AgentExecutor
	Store    taskstore.Store
	Queues   eventqueue.Manager
	Logger   *slog.Logger

	// CancelTimeout bounds how long OnTasksCancel waits for Executor.Cancel
	// to drive a task to a terminal state before forcing the transition
	// itself. Zero disables the timeout (waits indefinitely on ctx).
	CancelTimeout time.Duration

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewDefaultRequestHandler wires an executor, store, and queue manager
// into a ready-to-use RequestHandler, using a2a.DefaultCancelDeadline for
// CancelTimeout.
func NewDefaultRequestHandler(executor agentexecutor.AgentExecutor, store taskstore.Store, queues eventqueue.Manager, logger *slog.Logger) *DefaultRequestHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultRequestHandler{
		Executor:      executor,
		Store:         store,
		Queues:        queues,
		Logger:        logger,
		CancelTimeout: a2a.DefaultCancelDeadline,
		inFlight:      make(map[string]struct{}),
	}
}

// startJob claims taskID's execution slot, returning true if the caller is
// now responsible for invoking Executor.Execute. A false return means a job
// for taskID is already running (§4.6: at most one active executor job per
// task); the caller should just tap into the shared queue and wait.
func (h *DefaultRequestHandler) startJob(taskID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inFlight == nil {
		h.inFlight = make(map[string]struct{})
	}
	if _, running := h.inFlight[taskID]; running {
		return false
	}
	h.inFlight[taskID] = struct{}{}
	return true
}

// finishJob releases taskID's execution slot. Only the goroutine that
// started the job calls this.
func (h *DefaultRequestHandler) finishJob(taskID string) {
	h.mu.Lock()
	delete(h.inFlight, taskID)
	h.mu.Unlock()
}

var _ RequestHandler = (*DefaultRequestHandler)(nil)

// resolveTask loads params.Message.TaskID if set (continuing an
// InputRequired task per §9), otherwise creates a fresh Task. isNew reports
// whether a new task was created, so callers know to broadcast its initial
// Submitted status (§4.4).
func (h *DefaultRequestHandler) resolveTask(ctx context.Context, params a2a.MessageSendParams) (task *a2a.Task, isNew bool, err error) {
	if params.Message.TaskID != "" {
		task, err := h.Store.Get(ctx, params.Message.TaskID)
		if err != nil {
			return nil, false, err
		}
		if task.IsTerminal() {
			return nil, false, a2a.ErrInvalidParams.WithMessage(fmt.Sprintf("task %s is already in terminal state %s", task.ID, task.Status.State))
		}
		task.History = append(task.History, params.Message)
		return task, false, h.Store.Save(ctx, task)
	}
	task = a2a.NewTask(params.Message.ContextID)
	task.History = append(task.History, params.Message)
	return task, true, h.Store.Save(ctx, task)
}

// announceSubmitted broadcasts task's initial Submitted status on queue so
// a subscriber attached before the first StartWork call still observes it.
func (h *DefaultRequestHandler) announceSubmitted(ctx context.Context, task *a2a.Task, queue *eventqueue.Queue) error {
	return taskupdater.New(queue, task.ID, task.ContextID, "").Submit(ctx)
}

// OnMessageSend implements [RequestHandler] for message/send: it runs
// the executor to completion and returns the resulting task (§4.2).
func (h *DefaultRequestHandler) OnMessageSend(ctx context.Context, params a2a.MessageSendParams) (*a2a.Task, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", a2a.ErrInvalidParams, err)
	}

	task, isNew, err := h.resolveTask(ctx, params)
	if err != nil {
		return nil, err
	}

	queue := h.Queues.Get(task.ID)
	if isNew {
		if err := h.announceSubmitted(ctx, task, queue); err != nil {
			return nil, fmt.Errorf("%w: %v", a2a.ErrInternal, err)
		}
	}
	if err := h.runExecutorSync(ctx, task, params.Message, queue); err != nil {
		return nil, err
	}

	return h.Store.Get(ctx, task.ID)
}

// runExecutorSync drives the executor, applying every event it publishes to
// the stored task, and returns once the task reaches a terminal state or
// pauses in InputRequired/AuthRequired awaiting a follow-up message/send
// (§4.5, §4.6). If a job for this task is already running — a second
// message/send racing the first — it attaches to the shared queue instead
// of starting a second Executor.Execute.
func (h *DefaultRequestHandler) runExecutorSync(ctx context.Context, task *a2a.Task, msg a2a.Message, queue *eventqueue.Queue) error {
	reqCtx := agentexecutor.RequestContext{
		TaskID:    task.ID,
		ContextID: task.ContextID,
		Message:   msg,
		Task:      task,
		User:      auth.FromContext(ctx),
	}

	tap, err := queue.Tap()
	if err != nil {
		return fmt.Errorf("%w: %v", a2a.ErrInternal, err)
	}

	var execErr chan error
	if h.startJob(task.ID) {
		execErr = make(chan error, 1)
		go func() {
			defer h.finishJob(task.ID)
			execErr <- h.Executor.Execute(ctx, reqCtx, queue)
		}()
	}

	for {
		item, err := tap.Dequeue(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", a2a.ErrInternal, err)
		}
		if item.IsLag() {
			h.Logger.Warn("event queue lag while applying executor output", "taskId", task.ID, "dropped", item.Dropped)
			continue
		}
		stop := applyEvent(task, item.Event)
		if err := h.Store.Save(ctx, task); err != nil {
			return fmt.Errorf("%w: %v", a2a.ErrInternal, err)
		}
		if task.IsTerminal() {
			h.Queues.Close(task.ID)
		}
		if stop {
			if execErr != nil {
				return <-execErr
			}
			return nil
		}
	}
}

// applyEvent folds a StreamResponse event into task, returning true if the
// task should stop being awaited synchronously: a terminal status update,
// or a pause in InputRequired/AuthRequired (§4.5, §4.6).
func applyEvent(task *a2a.Task, event a2a.StreamResponse) bool {
	switch event.Kind {
	case a2a.StreamEventStatusUpdate:
		task.Status = event.StatusUpdate.Status
		if event.StatusUpdate.Status.Message != nil {
			task.History = append(task.History, *event.StatusUpdate.Status.Message)
		}
		return event.StatusUpdate.Final || isPausedTaskState(event.StatusUpdate.Status.State)
	case a2a.StreamEventArtifactUpdate:
		a2a.AppendArtifactToTask(task, event.ArtifactUpdate.Artifact, event.ArtifactUpdate.Append)
		return false
	case a2a.StreamEventMessage:
		if event.Message != nil {
			task.History = append(task.History, *event.Message)
		}
		return false
	default:
		return false
	}
}

// isPausedTaskState reports whether s is a non-terminal state in which the
// executor has stopped and is awaiting a follow-up message/send (§9).
func isPausedTaskState(s a2a.TaskState) bool {
	return s == a2a.TaskStateInputRequired || s == a2a.TaskStateAuthRequired
}

// OnMessageStream implements [RequestHandler] for message/stream: the
// executor runs in the background and every event it publishes is
// forwarded to the returned channel as it happens (§4.3).
func (h *DefaultRequestHandler) OnMessageStream(ctx context.Context, params a2a.MessageSendParams) (<-chan a2a.StreamResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", a2a.ErrInvalidParams, err)
	}

	task, isNew, err := h.resolveTask(ctx, params)
	if err != nil {
		return nil, err
	}

	queue := h.Queues.Get(task.ID)
	tap, err := queue.Tap()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", a2a.ErrInternal, err)
	}
	if isNew {
		if err := h.announceSubmitted(ctx, task, queue); err != nil {
			return nil, fmt.Errorf("%w: %v", a2a.ErrInternal, err)
		}
	}

	reqCtx := agentexecutor.RequestContext{
		TaskID:    task.ID,
		ContextID: task.ContextID,
		Message:   params.Message,
		Task:      task,
		User:      auth.FromContext(ctx),
	}
	if h.startJob(task.ID) {
		go func() {
			defer h.finishJob(task.ID)
			if err := h.Executor.Execute(ctx, reqCtx, queue); err != nil {
				h.Logger.Error("agent executor failed", "taskId", task.ID, "error", err)
			}
		}()
	}

	return h.forwardEvents(ctx, task, tap), nil
}

// forwardEvents copies events off tap onto a fresh channel, persisting task
// state as it goes. It closes the task's root queue once a terminal status
// update is observed (§4.3), and closes the returned channel once the task
// reaches a terminal state, pauses in InputRequired/AuthRequired, or ctx is
// done.
func (h *DefaultRequestHandler) forwardEvents(ctx context.Context, task *a2a.Task, tap *eventqueue.Queue) <-chan a2a.StreamResponse {
	out := make(chan a2a.StreamResponse, 1)
	go func() {
		defer close(out)
		for {
			item, err := tap.Dequeue(ctx)
			if err != nil {
				return
			}
			if item.IsLag() {
				h.Logger.Warn("stream subscriber lagged", "taskId", task.ID, "dropped", item.Dropped)
				continue
			}
			stop := applyEvent(task, item.Event)
			if err := h.Store.Save(ctx, task); err != nil {
				h.Logger.Error("failed to persist task", "taskId", task.ID, "error", err)
			}
			select {
			case out <- item.Event:
			case <-ctx.Done():
				return
			}
			if task.IsTerminal() {
				h.Queues.Close(task.ID)
			}
			if stop {
				return
			}
		}
	}()
	return out
}

// OnTasksGet implements [RequestHandler] for tasks/get (§4.2).
func (h *DefaultRequestHandler) OnTasksGet(ctx context.Context, params a2a.TaskQueryParams) (*a2a.Task, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", a2a.ErrInvalidParams, err)
	}
	task, err := h.Store.Get(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	if params.HistoryLength > 0 && len(task.History) > params.HistoryLength {
		task.History = task.History[len(task.History)-params.HistoryLength:]
	}
	return task, nil
}

// OnTasksList implements [RequestHandler] for tasks/list (§4.2).
func (h *DefaultRequestHandler) OnTasksList(ctx context.Context, params a2a.TaskListParams) (a2a.TaskListResult, error) {
	return h.Store.List(ctx, params)
}

// OnTasksCancel implements [RequestHandler] for tasks/cancel (§4.2,
// §4.5). It asks the executor to cancel cooperatively, waiting up to
// h.CancelTimeout (a2a.DefaultCancelDeadline by default) for a terminal
// status update before forcing the Canceled transition itself.
func (h *DefaultRequestHandler) OnTasksCancel(ctx context.Context, params a2a.TaskIDParams) (*a2a.Task, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", a2a.ErrInvalidParams, err)
	}
	task, err := h.Store.Get(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	if task.IsTerminal() {
		return nil, a2a.NewTaskNotCancelableError(task.ID, task.Status.State)
	}

	queue := h.Queues.Get(task.ID)
	tap, err := queue.Tap()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", a2a.ErrInternal, err)
	}
	reqCtx := agentexecutor.RequestContext{TaskID: task.ID, ContextID: task.ContextID, Task: task, User: auth.FromContext(ctx)}

	cancelCtx := ctx
	if h.CancelTimeout > 0 {
		var cancel context.CancelFunc
		cancelCtx, cancel = context.WithTimeout(ctx, h.CancelTimeout)
		defer cancel()
	}

	if err := h.Executor.Cancel(cancelCtx, reqCtx, queue); err != nil {
		return nil, fmt.Errorf("%w: %v", a2a.ErrInternal, err)
	}
	for !task.IsTerminal() {
		item, err := tap.Dequeue(cancelCtx)
		if err != nil {
			break
		}
		applyEvent(task, item.Event)
	}

	updater := taskupdater.New(queue, task.ID, task.ContextID, task.Status.State)
	if !updater.IsTerminal() {
		if err := updater.Cancel(ctx, nil); err != nil {
			h.Logger.Warn("failed to force-cancel task after deadline", "taskId", task.ID, "error", err)
		}
		task.Status = a2a.TaskStatus{State: a2a.TaskStateCanceled, Timestamp: time.Now().UTC()}
	}
	if err := h.Store.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("%w: %v", a2a.ErrInternal, err)
	}
	h.Queues.Close(task.ID)
	return task, nil
}

// OnTasksSubscribe implements [RequestHandler] for tasks/subscribe: it
// attaches a new tap to an already-running task's event queue without
// invoking the executor again (§4.3). If the task has already reached a
// terminal state, its queue is gone; the handler replays the stored
// terminal status once instead of hanging (§4.6).
func (h *DefaultRequestHandler) OnTasksSubscribe(ctx context.Context, params a2a.TaskQueryParams) (<-chan a2a.StreamResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", a2a.ErrInvalidParams, err)
	}
	task, err := h.Store.Get(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	if task.IsTerminal() {
		out := make(chan a2a.StreamResponse, 1)
		out <- a2a.NewStatusUpdateResponse(a2a.TaskStatusUpdateEvent{
			TaskID:    task.ID,
			ContextID: task.ContextID,
			Status:    task.Status,
			Final:     true,
		})
		close(out)
		return out, nil
	}

	tap, err := h.Queues.Tap(task.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", a2a.ErrInternal, err)
	}

	return h.forwardEvents(ctx, task, tap), nil
}
