package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PabloGalante/omni-agent/internal/adapters/llm"
	memstore "github.com/PabloGalante/omni-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/omni-agent/internal/app/agentflow"
	"github.com/PabloGalante/omni-agent/internal/app/conversation"
	"github.com/PabloGalante/omni-agent/internal/app/workspace"
	"github.com/PabloGalante/omni-agent/internal/config"
	"github.com/PabloGalante/omni-agent/internal/domain"
	"github.com/PabloGalante/omni-agent/internal/observability"
)

func newRootCmd() *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:          "omni",
		Short:        "OmniAgent: tasks, calendar and a multi-agent assistant",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return observability.SetLevel(v.GetString("log_level"))
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "YAML config file (env: OMNI_CONFIG_FILE)")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("provider", "", "LLM provider: mock, gemini or vertex (default: mock in local mode)")
	flags.String("model", llm.DefaultModel, "model identifier")
	flags.String("seed", "", "seed YAML file (default: built-in sample data)")
	flags.Bool("json", false, "output JSON")
	_ = v.BindPFlag("config_file", flags.Lookup("config"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("llm.provider", flags.Lookup("provider"))
	_ = v.BindPFlag("llm.model", flags.Lookup("model"))
	_ = v.BindPFlag("seed_file", flags.Lookup("seed"))
	_ = v.BindPFlag("json", flags.Lookup("json"))

	cmd.AddCommand(newServeCmd(v))
	cmd.AddCommand(newAskCmd(v))
	cmd.AddCommand(newStateCmd(v))

	return cmd
}

// app is the wired object graph shared by every command.
type app struct {
	cfg          *config.Config
	workspace    *workspace.Controller
	orchestrator *agentflow.Orchestrator
	conversation *conversation.Service
}

func buildApp(ctx context.Context, v *viper.Viper) (*app, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	llmClient, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("initializing LLM client: %w", err)
	}

	ws := workspace.NewController(workspace.Stores{
		Tasks:    memstore.NewTaskStore(),
		Events:   memstore.NewEventStore(),
		Messages: memstore.NewMessageStore(),
		RunLogs:  memstore.NewRunLogStore(),
	})
	seed, err := workspace.LoadSeed(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	if err := ws.Load(seed); err != nil {
		return nil, err
	}

	orch := agentflow.NewDefaultOrchestrator(llmClient, agentflow.Options{
		Model:          cfg.LLM.ModelName,
		ThinkingBudget: cfg.LLM.ThinkingBudget,
	})

	return &app{
		cfg:          cfg,
		workspace:    ws,
		orchestrator: orch,
		conversation: conversation.NewService(ws, orch),
	}, nil
}

// --- output helpers --- //

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTasks(w io.Writer, tasks []domain.Task) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle("Tasks")
	tw.AppendHeader(table.Row{"ID", "Title", "Done", "Priority", "Category", "Due"})
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = *t.DueDate
		}
		done := ""
		if t.Completed {
			done = "x"
		}
		tw.AppendRow(table.Row{shortID(string(t.ID)), t.Title, done, t.Priority, t.Category, due})
	}
	tw.Render()
}

func renderEvents(w io.Writer, events []domain.CalendarEvent) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle("Calendar")
	tw.AppendHeader(table.Row{"ID", "Title", "Start", "End", "Type", "Location"})
	for _, e := range events {
		loc := ""
		if e.Location != nil {
			loc = *e.Location
		}
		tw.AppendRow(table.Row{shortID(string(e.ID)), e.Title, e.StartTime, e.EndTime, e.Type, loc})
	}
	tw.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
