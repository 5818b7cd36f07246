package trace

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/scienceol/osfarm/pkg/middleware/logger"
)

type InitConfig struct {
	ServiceName    string
	Version        string
	Env            string
	TraceEndpoint  string
	MetricEndpoint string
	// Stdout exports to the console when no endpoint is configured.
	Stdout bool
}

var (
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
)

// InitTrace installs global trace and metric providers. Without an endpoint
// and without Stdout the otel no-op providers stay in place.
func InitTrace(ctx context.Context, conf *InitConfig) {
	res := resource.NewSchemaless(
		attribute.String("service.name", conf.ServiceName),
		attribute.String("service.version", conf.Version),
		attribute.String("deployment.environment", conf.Env),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	if spanExp, err := newSpanExporter(ctx, conf); err != nil {
		logger.Errorf(ctx, "init trace exporter err: %+v", err)
	} else if spanExp != nil {
		tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(spanExp),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(tracerProvider)
	}

	if metricExp, err := newMetricExporter(ctx, conf); err != nil {
		logger.Errorf(ctx, "init metric exporter err: %+v", err)
	} else if metricExp != nil {
		meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp, sdkmetric.WithInterval(30*time.Second))),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(meterProvider)

		if err := host.Start(); err != nil {
			logger.Warnf(ctx, "start host metrics err: %+v", err)
		}
		if err := runtime.Start(); err != nil {
			logger.Warnf(ctx, "start runtime metrics err: %+v", err)
		}
	}
}

func newSpanExporter(ctx context.Context, conf *InitConfig) (sdktrace.SpanExporter, error) {
	switch {
	case conf.TraceEndpoint != "":
		var exp *otlptrace.Exporter
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(conf.TraceEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		return exp, err
	case conf.Stdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return nil, nil
	}
}

func newMetricExporter(ctx context.Context, conf *InitConfig) (sdkmetric.Exporter, error) {
	switch {
	case conf.MetricEndpoint != "":
		return otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(conf.MetricEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	case conf.Stdout:
		return stdoutmetric.New()
	default:
		return nil, nil
	}
}

func CloseTrace() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	if tracerProvider != nil {
		errs = append(errs, tracerProvider.Shutdown(ctx))
	}
	if meterProvider != nil {
		errs = append(errs, meterProvider.Shutdown(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		logger.Errorf(ctx, "close trace err: %+v", err)
	}
}
