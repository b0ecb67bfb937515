package graphmaps

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with routing-specific helpers so that every
// component logs the same field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, a text handler writing to stderr at info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that writes JSON records to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that writes human-readable records to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithGraph adds the graph key to the logger.
func (l *Logger) WithGraph(key string) *Logger {
	return &Logger{
		Logger: l.Logger.With("graph", key),
	}
}

// WithAlgorithm adds the algorithm name to the logger.
func (l *Logger) WithAlgorithm(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("algorithm", name),
	}
}

// LogRoute logs a routing request.
func (l *Logger) LogRoute(ctx context.Context, req Request, resp *Response, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "route failed",
			"graph", req.Key,
			"source", req.Source,
			"destination", req.Destination,
			"algorithm", req.Algorithm,
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "route completed",
		"graph", resp.GraphID,
		"source", resp.Source,
		"destination", resp.Destination,
		"algorithm", resp.Algorithm,
		"iterations", resp.Iterations,
		"weight", resp.Weight,
		"solution_key", resp.SolutionKey,
		"elapsed", elapsed,
	)
}

// LogLoad logs a graph load.
func (l *Logger) LogLoad(ctx context.Context, key string, nodes, edges int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "graph load failed",
			"graph", key,
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "graph loaded",
		"graph", key,
		"nodes", nodes,
		"edges", edges,
		"elapsed", elapsed,
	)
}

// LogPersist logs the upload of a solution.
func (l *Logger) LogPersist(ctx context.Context, solutionKey string, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "solution upload failed",
			"solution_key", solutionKey,
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "solution uploaded",
		"solution_key", solutionKey,
		"elapsed", elapsed,
	)
}
