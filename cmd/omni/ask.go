package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PabloGalante/omni-agent/internal/app/conversation"
	"github.com/PabloGalante/omni-agent/internal/domain"
	"github.com/PabloGalante/omni-agent/internal/observability"
)

func newAskCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Run one chat turn against the starting state",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			observability.SetOutput(cmd.ErrOrStderr())
			ctx := cmd.Context()
			a, err := buildApp(ctx, v)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			asJSON := v.GetBool("json")

			res, err := a.conversation.SendMessage(ctx, conversation.SendMessageInput{Text: strings.Join(args, " ")},
				func(l domain.AgentLog) {
					if !asJSON {
						fmt.Fprintf(out, "[%s] %s\n", l.Role, l.Content)
					}
				})
			if err != nil {
				return err
			}

			st, err := a.workspace.Snapshot(ctx)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(out, map[string]any{
					"outcome": res.Outcome,
					"reply":   res.AgentMessage.Content,
					"logs":    res.Logs,
					"tasks":   st.Tasks,
					"events":  st.Events,
				})
			}

			fmt.Fprintf(out, "\n%s\n\n", res.AgentMessage.Content)
			renderTasks(out, st.Tasks)
			renderEvents(out, st.Events)
			return nil
		},
	}
}
