package conversation

import (
	"context"

	"github.com/PabloGalante/omni-agent/internal/app/agentflow"
	"github.com/PabloGalante/omni-agent/internal/app/workspace"
	"github.com/PabloGalante/omni-agent/internal/domain"
	"github.com/PabloGalante/omni-agent/internal/observability"
)

// Service drives one chat turn end to end: admission through the
// workspace gate, the agent workflow, and applying its result.
type Service struct {
	workspace    *workspace.Controller
	orchestrator *agentflow.Orchestrator
}

func NewService(ws *workspace.Controller, orchestrator *agentflow.Orchestrator) *Service {
	return &Service{
		workspace:    ws,
		orchestrator: orchestrator,
	}
}

type SendMessageInput struct {
	Text string
}

type SendMessageOutput struct {
	UserMessage  domain.ChatMessage
	AgentMessage domain.ChatMessage
	Outcome      agentflow.Outcome
	Logs         []domain.AgentLog
}

// SendMessage runs a full turn. Errors are only returned when the turn is
// not admitted (workspace.ErrBusy, workspace.ErrEmptyInput) or the state
// cannot be read or written; a failing workflow still produces an
// assistant message.
//
// The workflow runs detached from ctx cancellation: once admitted, a turn
// always completes and releases the processing flag.
func (s *Service) SendMessage(ctx context.Context, in SendMessageInput, onProgress agentflow.ProgressFunc) (*SendMessageOutput, error) {
	log := observability.LoggerFromContext(ctx)

	userMsg, err := s.workspace.BeginSend(ctx, in.Text)
	if err != nil {
		log.Warn("send rejected", "error", err)
		return nil, err
	}
	log.Info("sending message", "message_id", userMsg.ID)

	runCtx := context.WithoutCancel(ctx)

	snapshot, err := s.workspace.Snapshot(runCtx)
	if err != nil {
		log.Error("failed to snapshot state", "error", err)
		// Release the gate with an apology so the workspace stays usable.
		_, _ = s.workspace.ApplyWorkflowResult(runCtx, &agentflow.WorkflowResult{
			Outcome:  agentflow.OutcomeFailed,
			Response: agentflow.ApologyResponse,
			Err:      err,
		})
		return nil, err
	}

	result := s.orchestrator.RunWorkflow(runCtx, in.Text, snapshot, func(entry domain.AgentLog) {
		if err := s.workspace.RecordProgress(runCtx, entry); err != nil {
			log.Warn("failed to record progress", "error", err)
		}
		if onProgress != nil {
			onProgress(entry)
		}
	})
	if result.Failed() {
		log.Warn("workflow failed", "error", result.Err)
	}

	agentMsg, err := s.workspace.ApplyWorkflowResult(runCtx, result)
	if err != nil {
		log.Error("failed to apply workflow result", "error", err)
		return nil, err
	}

	log.Info("send message completed", "outcome", result.Outcome, "logs", len(result.Logs))

	return &SendMessageOutput{
		UserMessage:  userMsg,
		AgentMessage: agentMsg,
		Outcome:      result.Outcome,
		Logs:         result.Logs,
	}, nil
}

// GetTimeline returns the newest messages, oldest first. A limit <= 0
// returns all of them.
func (s *Service) GetTimeline(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	state, err := s.workspace.Snapshot(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to get timeline", "error", err)
		return nil, err
	}
	msgs := state.Messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}
