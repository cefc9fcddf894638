package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldBroadcastDate is the key for the YYYYMMDD date of the broadcast being processed.
	FieldBroadcastDate = "broadcast_date"
	// FieldRunID is the key for the identifier of one pipeline run.
	FieldRunID = "run_id"
	// FieldStage is the key for pipeline stage names.
	FieldStage = "stage"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
)

type contextKey int

const (
	broadcastDateKey contextKey = iota
	runIDKey
	stageKey
)

// WithBroadcast tags the context with the broadcast date and run id.
func WithBroadcast(ctx context.Context, date, runID string) context.Context {
	ctx = context.WithValue(ctx, broadcastDateKey, date)
	return context.WithValue(ctx, runIDKey, runID)
}

// WithStage tags the context with a pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if date, ok := ctx.Value(broadcastDateKey).(string); ok && date != "" {
		fields = append(fields, slog.String(FieldBroadcastDate, date))
	}
	if id, ok := ctx.Value(runIDKey).(string); ok && id != "" {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if stage, ok := ctx.Value(stageKey).(string); ok && stage != "" {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
