package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/omni-agent/internal/app/agentflow"
	"github.com/PabloGalante/omni-agent/internal/domain"
	"github.com/PabloGalante/omni-agent/internal/observability"
)

var (
	ErrBusy         = errors.New("a workflow run is already in progress")
	ErrEmptyInput   = errors.New("message text is required")
	ErrInvalidDraft = errors.New("title is required")
)

const (
	DefaultCategory  = "General"
	DefaultEndTime   = "Noon"
	DefaultPriority  = domain.PriorityMedium
	DefaultEventType = domain.EventWork
)

// Stores groups the persistence ports the controller mutates.
type Stores struct {
	Tasks    domain.TaskStore
	Events   domain.EventStore
	Messages domain.MessageStore
	RunLogs  domain.RunLogStore
}

// Controller owns the application state. It is the only writer of the
// stores and admits at most one workflow run at a time.
type Controller struct {
	mu          sync.Mutex
	stores      Stores
	processing  bool
	currentGoal string

	now   func() time.Time
	newID func() string
}

func NewController(stores Stores) *Controller {
	return &Controller{
		stores: stores,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Load appends seed data to the stores. Seed ids are kept as they are.
func (c *Controller) Load(seed *Seed) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range seed.Tasks {
		if err := c.stores.Tasks.AppendTask(t); err != nil {
			return fmt.Errorf("seeding task %s: %w", t.ID, err)
		}
	}
	for _, e := range seed.Events {
		if err := c.stores.Events.AppendEvent(e); err != nil {
			return fmt.Errorf("seeding event %s: %w", e.ID, err)
		}
	}
	if seed.Welcome != "" {
		welcome := domain.ChatMessage{
			ID:        domain.MessageID(c.newID()),
			Sender:    domain.SenderAssistant,
			Content:   seed.Welcome,
			Timestamp: c.now(),
		}
		if err := c.stores.Messages.AppendMessage(welcome); err != nil {
			return fmt.Errorf("seeding welcome message: %w", err)
		}
	}
	return nil
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot(ctx context.Context) (domain.AppState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks, err := c.stores.Tasks.ListTasks()
	if err != nil {
		return domain.AppState{}, err
	}
	events, err := c.stores.Events.ListEvents()
	if err != nil {
		return domain.AppState{}, err
	}
	msgs, err := c.stores.Messages.ListMessages(0)
	if err != nil {
		return domain.AppState{}, err
	}

	return domain.AppState{
		Tasks:        tasks,
		Events:       events,
		Messages:     msgs,
		CurrentGoal:  c.currentGoal,
		IsProcessing: c.processing,
	}.Clone(), nil
}

func (c *Controller) IsProcessing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.processing
}

// ToggleTask flips completed on the task. An unknown id is a no-op and
// reports found=false.
func (c *Controller) ToggleTask(ctx context.Context, id domain.TaskID) (domain.Task, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	task, found, err := c.stores.Tasks.ToggleTask(id)
	if err != nil {
		return domain.Task{}, false, err
	}
	if !found {
		observability.LoggerFromContext(ctx).Debug("toggle on unknown task ignored", "task_id", id)
		return domain.Task{}, false, nil
	}
	observability.RecordStateOp(ctx, "toggle_task")
	return task, true, nil
}

// AddTask materialises the draft and puts it first in the list.
func (c *Controller) AddTask(ctx context.Context, draft domain.TaskDraft) (domain.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	task, err := c.newTask(draft)
	if err != nil {
		return domain.Task{}, err
	}
	if err := c.stores.Tasks.PrependTask(task); err != nil {
		return domain.Task{}, err
	}
	observability.RecordStateOp(ctx, "add_task")
	return task, nil
}

func (c *Controller) AddEvent(ctx context.Context, draft domain.EventDraft) (domain.CalendarEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	event, err := c.newEvent(draft)
	if err != nil {
		return domain.CalendarEvent{}, err
	}
	if err := c.stores.Events.AppendEvent(event); err != nil {
		return domain.CalendarEvent{}, err
	}
	observability.RecordStateOp(ctx, "add_event")
	return event, nil
}

// BeginSend admits a new chat turn: it appends the user message, raises
// the processing flag and clears the previous run's log trail. A send while
// another run is in flight is rejected with ErrBusy, not queued.
func (c *Controller) BeginSend(ctx context.Context, text string) (domain.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ChatMessage{}, ErrEmptyInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.processing {
		return domain.ChatMessage{}, ErrBusy
	}

	msg := domain.ChatMessage{
		ID:        domain.MessageID(c.newID()),
		Sender:    domain.SenderUser,
		Content:   text,
		Timestamp: c.now(),
	}
	if err := c.stores.Messages.AppendMessage(msg); err != nil {
		return domain.ChatMessage{}, err
	}
	if err := c.stores.RunLogs.ResetRunLog(); err != nil {
		return domain.ChatMessage{}, err
	}

	c.processing = true
	c.currentGoal = text
	observability.RecordStateOp(ctx, "begin_send")
	return msg, nil
}

// RecordProgress appends a live progress entry to the current run trail.
func (c *Controller) RecordProgress(ctx context.Context, log domain.AgentLog) error {
	return c.stores.RunLogs.AppendRunLog(log)
}

func (c *Controller) CurrentLogs(ctx context.Context) ([]domain.AgentLog, error) {
	return c.stores.RunLogs.ListRunLog()
}

// ApplyWorkflowResult is the single point where orchestrator output becomes
// state: drafts are materialised and appended, the assistant reply is
// appended with the run's logs and the processing flag is cleared.
func (c *Controller) ApplyWorkflowResult(ctx context.Context, result *agentflow.WorkflowResult) (domain.ChatMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.processing = false }()

	log := observability.LoggerFromContext(ctx)

	for _, d := range result.ProposedTasks {
		task, err := c.newTask(d)
		if err != nil {
			log.Warn("skipping proposed task", "error", err)
			continue
		}
		if err := c.stores.Tasks.AppendTask(task); err != nil {
			return domain.ChatMessage{}, fmt.Errorf("appending proposed task: %w", err)
		}
	}
	for _, d := range result.ProposedEvents {
		event, err := c.newEvent(d)
		if err != nil {
			log.Warn("skipping proposed event", "error", err)
			continue
		}
		if err := c.stores.Events.AppendEvent(event); err != nil {
			return domain.ChatMessage{}, fmt.Errorf("appending proposed event: %w", err)
		}
	}

	reply := domain.ChatMessage{
		ID:        domain.MessageID(c.newID()),
		Sender:    domain.SenderAssistant,
		Content:   result.Response,
		Timestamp: c.now(),
		Logs:      append([]domain.AgentLog(nil), result.Logs...),
	}
	if err := c.stores.Messages.AppendMessage(reply); err != nil {
		return domain.ChatMessage{}, err
	}

	observability.RecordStateOp(ctx, "apply_workflow_result")
	log.Info("workflow result applied",
		"outcome", result.Outcome,
		"tasks_added", len(result.ProposedTasks),
		"events_added", len(result.ProposedEvents),
	)
	return reply, nil
}

// --- internal helpers --- //

func (c *Controller) newTask(d domain.TaskDraft) (domain.Task, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return domain.Task{}, ErrInvalidDraft
	}
	priority, ok := domain.ParsePriority(string(d.Priority))
	if !ok {
		priority = DefaultPriority
	}
	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = DefaultCategory
	}
	return domain.Task{
		ID:        domain.TaskID(c.newID()),
		Title:     title,
		Completed: false,
		Priority:  priority,
		Category:  category,
		DueDate:   d.DueDate,
	}, nil
}

func (c *Controller) newEvent(d domain.EventDraft) (domain.CalendarEvent, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return domain.CalendarEvent{}, ErrInvalidDraft
	}
	endTime := strings.TrimSpace(d.EndTime)
	if endTime == "" {
		endTime = DefaultEndTime
	}
	typ, ok := domain.ParseEventType(string(d.Type))
	if !ok {
		typ = DefaultEventType
	}
	return domain.CalendarEvent{
		ID:        domain.EventID(c.newID()),
		Title:     title,
		StartTime: strings.TrimSpace(d.StartTime),
		EndTime:   endTime,
		Location:  d.Location,
		Type:      typ,
	}, nil
}
