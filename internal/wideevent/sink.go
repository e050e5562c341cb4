package wideevent

import "log/slog"

// Sink receives the accumulated context of one finished cycle.
type Sink interface {
	Emit(operation string, event map[string]any)
}

// LogSink emits wide events as single structured log records.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink writing through the given logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit writes one record carrying the whole event.
func (s *LogSink) Emit(operation string, event map[string]any) {
	s.logger.Info("wide event", slog.String("operation", operation), slog.Any("event", event))
}
