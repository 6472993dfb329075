package observability

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelglobal "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const meterName = "github.com/PabloGalante/omni-agent"

var (
	AttrStage     = attribute.Key("stage")
	AttrOutcome   = attribute.Key("outcome")
	AttrOperation = attribute.Key("operation")
)

var (
	initMetricsOnce  sync.Once
	workflowRuns     metric.Int64Counter
	workflowDuration metric.Float64Histogram
	stageDuration    metric.Float64Histogram
	stateOps         metric.Int64Counter
	progressEvents   metric.Int64Counter
)

// InitMeterProvider installs a global MeterProvider backed by a Prometheus
// exporter and returns the /metrics handler.
func InitMeterProvider(ctx context.Context, serviceName string) (http.Handler, error) {
	if serviceName == "" {
		serviceName = "omni-agent"
	}
	reg := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otelglobal.SetMeterProvider(provider)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true}), nil
}

func Meter() metric.Meter {
	return otelglobal.Meter(meterName)
}

// InitMetrics creates the instruments. Only the first call does anything.
func InitMetrics() error {
	var err error
	initMetricsOnce.Do(func() {
		m := Meter()
		workflowRuns, err = m.Int64Counter("omni_workflow_runs_total", metric.WithDescription("Workflow runs by outcome"))
		if err != nil {
			return
		}
		workflowDuration, err = m.Float64Histogram("omni_workflow_duration_seconds", metric.WithDescription("Workflow run duration in seconds"))
		if err != nil {
			return
		}
		stageDuration, err = m.Float64Histogram("omni_workflow_stage_duration_seconds", metric.WithDescription("Workflow stage duration in seconds"))
		if err != nil {
			return
		}
		stateOps, err = m.Int64Counter("omni_state_operations_total", metric.WithDescription("State controller mutations"))
		if err != nil {
			return
		}
		progressEvents, err = m.Int64Counter("omni_progress_events_total", metric.WithDescription("Progress events published to stream subscribers"))
	})
	return err
}

// RecordWorkflowRun records one finished run.
func RecordWorkflowRun(ctx context.Context, outcome string, d time.Duration) {
	if workflowRuns != nil {
		workflowRuns.Add(ctx, 1, metric.WithAttributes(AttrOutcome.String(outcome)))
	}
	if workflowDuration != nil {
		workflowDuration.Record(ctx, d.Seconds(), metric.WithAttributes(AttrOutcome.String(outcome)))
	}
}

// RecordStage records the duration of one stage round-trip.
func RecordStage(ctx context.Context, stage, outcome string, d time.Duration) {
	if stageDuration != nil {
		stageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(AttrStage.String(stage), AttrOutcome.String(outcome)))
	}
}

func RecordStateOp(ctx context.Context, op string) {
	if stateOps != nil {
		stateOps.Add(ctx, 1, metric.WithAttributes(AttrOperation.String(op)))
	}
}

func RecordProgressEvent(ctx context.Context) {
	if progressEvents != nil {
		progressEvents.Add(ctx, 1)
	}
}
