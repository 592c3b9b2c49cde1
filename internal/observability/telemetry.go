package observability

import (
	"context"
	"time"

	"github.com/annel0/ocean-terrain/internal/config"
	"github.com/annel0/ocean-terrain/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// ShutdownFunc завершает работу провайдера трассировки
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitTelemetry настраивает OTLP экспортер и устанавливает глобальный TracerProvider.
// Возвращает функцию shutdown, которую нужно вызвать при завершении приложения.
// При выключенной телеметрии ничего не настраивается, и TracingHook
// пишет в no-op провайдер.
func InitTelemetry(ctx context.Context, cfg config.TelemetryConfig) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return noopShutdown, nil
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "ocean-terrain"
	}

	// OTLP HTTP экспортер (по умолчанию localhost:4318, настраивается через OTEL_EXPORTER_OTLP_*)
	exp, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	logging.Info("📡 OpenTelemetry инициализирован (OTLP → 4318, service=%s)", serviceName)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}, nil
}
