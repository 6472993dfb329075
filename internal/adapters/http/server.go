package httpadapter

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/PabloGalante/omni-agent/internal/app/conversation"
	"github.com/PabloGalante/omni-agent/internal/app/workspace"
	"github.com/PabloGalante/omni-agent/internal/domain"
	"github.com/PabloGalante/omni-agent/internal/observability"
)

// Config for the HTTP API handler.
type Config struct {
	Conversation *conversation.Service
	Workspace    *workspace.Controller
	// Hub receives progress and state-change events. A nil hub gets a
	// private one so /chat/stream always works.
	Hub *SSEHub
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// Instrument wraps the handler with otelhttp.
	Instrument bool
}

type server struct {
	conv *conversation.Service
	ws   *workspace.Controller
	hub  *SSEHub
}

// NewServer returns an http.Handler exposing the OmniAgent API.
func NewServer(cfg Config) http.Handler {
	hub := cfg.Hub
	if hub == nil {
		hub = NewSSEHub()
	}
	s := &server{conv: cfg.Conversation, ws: cfg.Workspace, hub: hub}

	huma.DefaultArrayNullable = false
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			// Body validation failures are client errors like any other.
			status = http.StatusBadRequest
		}
		var details map[string]any
		if len(errs) > 0 {
			msgs := make([]string, 0, len(errs))
			for _, e := range errs {
				msgs = append(msgs, e.Error())
			}
			details = map[string]any{"errors": msgs}
		}
		return newAPIError(status, "", msg, details)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(withLogging)
	router.Use(withCORS)
	router.Use(middleware.Recoverer)

	hcfg := huma.DefaultConfig("OmniAgent API", "1.0.0")
	hcfg.OpenAPIPath = "/openapi"
	hcfg.DocsPath = ""
	api := humachi.New(router, hcfg)

	s.registerHealth(api)
	s.registerState(api)
	s.registerTasks(api)
	s.registerEvents(api)
	s.registerChat(api)

	router.Get("/chat/stream", hub.Handler())
	if cfg.Metrics != nil {
		router.Handle("/metrics", cfg.Metrics)
	}

	var handler http.Handler = router
	if cfg.Instrument {
		handler = otelhttp.NewHandler(handler, "omni-agent")
	}
	return handler
}

func (s *server) registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string `json:"body"`
	}, error) {
		return &struct {
			Body map[string]string `json:"body"`
		}{Body: map[string]string{"status": "ok"}}, nil
	})
}

func (s *server) registerState(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-state",
		Method:      http.MethodGet,
		Path:        "/state",
		Summary:     "Current application state",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body stateResponse `json:"body"`
	}, error) {
		st, err := s.ws.Snapshot(ctx)
		if err != nil {
			return nil, handleError(ctx, err)
		}
		return &struct {
			Body stateResponse `json:"body"`
		}{Body: toStateResponse(st)}, nil
	})
}

func (s *server) registerTasks(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-task",
		Method:        http.MethodPost,
		Path:          "/tasks",
		Summary:       "Add a task to the top of the list",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body createTaskRequest `json:"body"`
	}) (*struct {
		Body taskResponse `json:"body"`
	}, error) {
		if strings.TrimSpace(input.Body.Title) == "" {
			return nil, newAPIError(http.StatusBadRequest, "bad_request", "title is required", nil)
		}
		task, err := s.ws.AddTask(ctx, domain.TaskDraft{
			Title:    input.Body.Title,
			Priority: domain.Priority(input.Body.Priority),
			Category: input.Body.Category,
			DueDate:  input.Body.DueDate,
		})
		if err != nil {
			return nil, handleError(ctx, err)
		}
		s.publishState()
		return &struct {
			Body taskResponse `json:"body"`
		}{Body: toTaskResponse(task)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "toggle-task",
		Method:      http.MethodPost,
		Path:        "/tasks/{id}/toggle",
		Summary:     "Flip a task's completed flag",
		Description: "Toggling an unknown id is a no-op reported with toggled=false.",
	}, func(ctx context.Context, input *struct {
		ID string `path:"id"`
	}) (*struct {
		Body toggleTaskResponse `json:"body"`
	}, error) {
		task, found, err := s.ws.ToggleTask(ctx, domain.TaskID(input.ID))
		if err != nil {
			return nil, handleError(ctx, err)
		}
		resp := toggleTaskResponse{Toggled: found}
		if found {
			t := toTaskResponse(task)
			resp.Task = &t
			s.publishState()
		}
		return &struct {
			Body toggleTaskResponse `json:"body"`
		}{Body: resp}, nil
	})
}

func (s *server) registerEvents(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-event",
		Method:        http.MethodPost,
		Path:          "/events",
		Summary:       "Add a calendar event",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body createEventRequest `json:"body"`
	}) (*struct {
		Body eventResponse `json:"body"`
	}, error) {
		if strings.TrimSpace(input.Body.Title) == "" {
			return nil, newAPIError(http.StatusBadRequest, "bad_request", "title is required", nil)
		}
		if strings.TrimSpace(input.Body.StartTime) == "" {
			return nil, newAPIError(http.StatusBadRequest, "bad_request", "start_time is required", nil)
		}
		ev, err := s.ws.AddEvent(ctx, domain.EventDraft{
			Title:     input.Body.Title,
			StartTime: input.Body.StartTime,
			EndTime:   input.Body.EndTime,
			Type:      domain.EventType(input.Body.Type),
			Location:  input.Body.Location,
		})
		if err != nil {
			return nil, handleError(ctx, err)
		}
		s.publishState()
		return &struct {
			Body eventResponse `json:"body"`
		}{Body: toEventResponse(ev)}, nil
	})
}

func (s *server) registerChat(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "send-message",
		Method:      http.MethodPost,
		Path:        "/chat",
		Summary:     "Send a chat message and run the agent workflow",
		Description: "Progress entries are streamed on /chat/stream while the run is in flight.",
		Errors:      []int{http.StatusBadRequest, http.StatusConflict},
	}, func(ctx context.Context, input *struct {
		Body sendMessageRequest `json:"body"`
	}) (*struct {
		Body sendMessageResponse `json:"body"`
	}, error) {
		out, err := s.conv.SendMessage(ctx, conversation.SendMessageInput{Text: input.Body.Text}, func(entry domain.AgentLog) {
			s.hub.PublishJSON(map[string]any{"type": "agent_log", "log": toLogResponse(entry)})
		})
		if err != nil {
			return nil, handleError(ctx, err)
		}
		s.publishState()
		return &struct {
			Body sendMessageResponse `json:"body"`
		}{Body: toSendMessageResponse(out)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-chat-logs",
		Method:      http.MethodGet,
		Path:        "/chat/logs",
		Summary:     "Progress log of the current or last run",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body logsResponse `json:"body"`
	}, error) {
		logs, err := s.ws.CurrentLogs(ctx)
		if err != nil {
			return nil, handleError(ctx, err)
		}
		return &struct {
			Body logsResponse `json:"body"`
		}{Body: logsResponse{Processing: s.ws.IsProcessing(), Logs: toLogsResponse(logs)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-messages",
		Method:      http.MethodGet,
		Path:        "/chat/messages",
		Summary:     "Chat timeline, oldest first",
	}, func(ctx context.Context, input *struct {
		Limit int `query:"limit" minimum:"0" doc:"Return only the newest N messages; 0 returns all."`
	}) (*struct {
		Body []messageResponse `json:"body"`
	}, error) {
		msgs, err := s.conv.GetTimeline(ctx, input.Limit)
		if err != nil {
			return nil, handleError(ctx, err)
		}
		return &struct {
			Body []messageResponse `json:"body"`
		}{Body: toMessagesResponse(msgs)}, nil
	})
}

func (s *server) publishState() {
	s.hub.PublishJSON(map[string]any{"type": "state"})
}

func handleError(ctx context.Context, err error) huma.StatusError {
	switch {
	case errors.Is(err, workspace.ErrBusy):
		return newAPIError(http.StatusConflict, "busy", err.Error(), nil)
	case errors.Is(err, workspace.ErrEmptyInput), errors.Is(err, workspace.ErrInvalidDraft):
		return newAPIError(http.StatusBadRequest, "bad_request", err.Error(), nil)
	default:
		observability.LoggerFromContext(ctx).Error("request failed", "error", err)
		return newAPIError(http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
