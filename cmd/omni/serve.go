package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	httpadapter "github.com/PabloGalante/omni-agent/internal/adapters/http"
	"github.com/PabloGalante/omni-agent/internal/observability"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := observability.Logger()

			a, err := buildApp(ctx, v)
			if err != nil {
				return err
			}

			var metrics http.Handler
			if a.cfg.MetricsEnabled {
				metrics, err = observability.InitMeterProvider(ctx, "omni-agent")
				if err != nil {
					return err
				}
				if err := observability.InitMetrics(); err != nil {
					return err
				}
			}

			handler := httpadapter.NewServer(httpadapter.Config{
				Conversation: a.conversation,
				Workspace:    a.workspace,
				Hub:          httpadapter.NewSSEHub(),
				Metrics:      metrics,
				Instrument:   a.cfg.MetricsEnabled,
			})

			srv := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
				IdleTimeout:       60 * time.Second,
				// no WriteTimeout: /chat/stream is long-lived
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("OmniAgent API listening", "port", a.cfg.Port, "mode", a.cfg.Mode, "provider", a.cfg.LLM.Provider)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().String("port", "8080", "listen port (env: OMNI_PORT, PORT)")
	_ = v.BindPFlag("port", cmd.Flags().Lookup("port"))
	_ = v.BindEnv("port", "OMNI_PORT", "PORT")
	return cmd
}
