package processing

import (
	"context"
	"log/slog"
	"time"

	"sigproc/internal/channels"
	sperrors "sigproc/internal/errors"
)

// logProcessingStart logs the start of one processing call.
func (d *Dispatcher) logProcessingStart(ctx context.Context, opID string, op Operation, p Params) {
	d.logger.InfoContext(ctx, "processing_start",
		slog.String("operation_id", opID),
		slog.String("operation", string(op)),
		slog.Float64("sampling_rate", p.SamplingRate),
		slog.String("channel", p.Channel))
}

// logProcessingComplete logs a successful processing call.
func (d *Dispatcher) logProcessingComplete(ctx context.Context, opID string, op Operation, duration time.Duration, result *channels.Collection) {
	d.logger.InfoContext(ctx, "processing_complete",
		slog.String("operation_id", opID),
		slog.String("operation", string(op)),
		slog.Duration("duration", duration),
		slog.Int("points", result.Len()),
		slog.Int("channels", result.NumChannels()))
}

// logProcessingError logs a rejected or failed processing call.
func (d *Dispatcher) logProcessingError(ctx context.Context, opID string, opName string, err error) {
	errorMsg := "unknown error"
	if err != nil {
		errorMsg = err.Error()
	}
	d.logger.ErrorContext(ctx, "processing_error",
		slog.String("operation_id", opID),
		slog.String("operation", opName),
		slog.String("code", string(sperrors.CodeOf(err))),
		slog.String("error", errorMsg))
}
