package llm

import (
	"context"
	"log/slog"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Provider  Provider
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes one structured record per LLM call.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	level := slog.LevelInfo
	status := "ok"
	if !event.Success {
		level = slog.LevelWarn
		status = "err:" + event.ErrorCode
	}
	o.logger.LogAttrs(context.Background(), level, "llm_call",
		slog.String("task", string(event.Task)),
		slog.String("provider", string(event.Provider)),
		slog.String("model", event.Model),
		slog.Int64("latency_ms", event.LatencyMs),
		slog.Int("attempts", event.Attempts),
		slog.String("status", status),
	)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
