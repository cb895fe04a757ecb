package registration

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/carverauto/hmibroker/pkg/models"
)

const instrumentationName = "hmibroker.registration"

type registrationMetricsState struct {
	once    sync.Once
	counter metric.Int64Counter
}

var registrationMetrics registrationMetricsState

func recordRegistrationMetric(ctx context.Context, code models.ResultCode, warnings int) {
	registrationMetrics.once.Do(func() {
		meter := otel.Meter(instrumentationName)
		counter, err := meter.Int64Counter(
			"hmibroker_registrations_total",
			metric.WithDescription("Total RegisterAppInterface requests handled, by result code"),
		)
		if err != nil {
			return
		}
		registrationMetrics.counter = counter
	})

	if registrationMetrics.counter == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("result", string(code)),
	}
	if warnings > 0 {
		attrs = append(attrs, attribute.Bool("warnings", true))
	}

	registrationMetrics.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}
