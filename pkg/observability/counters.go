package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "task-manager"

// Outcome labels
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"
)

// Metrics holds the domain counters of the service
type Metrics struct {
	registrations metric.Int64Counter
	logins        metric.Int64Counter
	refreshes     metric.Int64Counter
	taskMutations metric.Int64Counter
}

// NewMetrics registers the domain counters with the meter provider
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	meter := provider.Meter(meterName)

	registrations, err := meter.Int64Counter("auth_registrations_total",
		metric.WithDescription("User registrations by result"))
	if err != nil {
		return nil, fmt.Errorf("failed to create registrations counter: %w", err)
	}

	logins, err := meter.Int64Counter("auth_logins_total",
		metric.WithDescription("Login attempts by result"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logins counter: %w", err)
	}

	refreshes, err := meter.Int64Counter("auth_refreshes_total",
		metric.WithDescription("Refresh token exchanges by result"))
	if err != nil {
		return nil, fmt.Errorf("failed to create refreshes counter: %w", err)
	}

	taskMutations, err := meter.Int64Counter("tasks_mutations_total",
		metric.WithDescription("Task create, update and delete operations by result"))
	if err != nil {
		return nil, fmt.Errorf("failed to create task mutations counter: %w", err)
	}

	return &Metrics{
		registrations: registrations,
		logins:        logins,
		refreshes:     refreshes,
		taskMutations: taskMutations,
	}, nil
}

// NewNoopMetrics returns counters that record nothing
func NewNoopMetrics() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider())
	return m
}

func (m *Metrics) RecordRegistration(ctx context.Context, result string) {
	m.registrations.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (m *Metrics) RecordLogin(ctx context.Context, result string) {
	m.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (m *Metrics) RecordRefresh(ctx context.Context, result string) {
	m.refreshes.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (m *Metrics) RecordTaskMutation(ctx context.Context, op, result string) {
	m.taskMutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("result", result),
	))
}
