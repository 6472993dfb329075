package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PabloGalante/omni-agent/internal/observability"
)

func newStateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the starting tasks and calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			observability.SetOutput(cmd.ErrOrStderr())
			a, err := buildApp(cmd.Context(), v)
			if err != nil {
				return err
			}
			st, err := a.workspace.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if v.GetBool("json") {
				return printJSON(out, st)
			}
			renderTasks(out, st.Tasks)
			renderEvents(out, st.Events)
			return nil
		},
	}
}
