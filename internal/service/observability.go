package service

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"time"
)

// UseCaseEvent is emitted once per service call.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Err       error
	// Fields carries domain measurements such as cost_id or
	// skipped_sessions.
	Fields map[string]any
}

func (e UseCaseEvent) Success() bool { return e.Err == nil }

// UseCaseObserver receives use-case events and warnings about degraded
// lookups that did not fail the call.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
	Warn(ctx context.Context, msg string, attrs ...any)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}
func (NoopUseCaseObserver) Warn(context.Context, string, ...any)         {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver logs events as slog text lines on w. Fields are
// written in key order.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &logUseCaseObserver{logger: slog.New(h).With("component", "prodtime")}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := []slog.Attr{
		slog.String("use_case", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", event.Success()),
	}
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, event.Fields[k]))
	}

	level := slog.LevelInfo
	if event.Err != nil {
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "service_use_case", attrs...)
}

func (o *logUseCaseObserver) Warn(ctx context.Context, msg string, attrs ...any) {
	o.logger.WarnContext(ctx, msg, attrs...)
}

// observers fans events out to several observers.
type observers []UseCaseObserver

func (set observers) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, o := range set {
		o.ObserveUseCase(ctx, event)
	}
}

func (set observers) Warn(ctx context.Context, msg string, attrs ...any) {
	for _, o := range set {
		o.Warn(ctx, msg, attrs...)
	}
}

func useCaseObserverOrNoop(list []UseCaseObserver) UseCaseObserver {
	var set observers
	for _, o := range list {
		if o != nil {
			set = append(set, o)
		}
	}
	switch len(set) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return set[0]
	default:
		return set
	}
}

// observe emits one event for the use case when the returned func runs.
// Callers add domain fields to the map before returning.
func observe(ctx context.Context, obs UseCaseObserver, name string, errp *error) (map[string]any, func()) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	return fields, func() {
		obs.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Err:       *errp,
			Fields:    fields,
		})
	}
}
