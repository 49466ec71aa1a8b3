package meshgeo

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/meshgeo/geodesic"
	"github.com/hupe1980/meshgeo/mesh"
)

// Logger wraps slog.Logger with meshgeo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithSeed adds a seed field to the logger.
func (l *Logger) WithSeed(seed string) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// WithRadius adds a radius field to the logger.
func (l *Logger) WithRadius(radius float64) *Logger {
	return &Logger{
		Logger: l.Logger.With("radius", radius),
	}
}

// LogSphereQuery logs a sphere query.
func (l *Logger) LogSphereQuery(ctx context.Context, seed mesh.VertexID, radius float64, faces int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sphere query failed",
			"seed", seed,
			"radius", radius,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "sphere query completed",
			"seed", seed,
			"radius", radius,
			"faces", faces,
		)
	}
}

// LogMarch logs a geodesic march.
func (l *Logger) LogMarch(ctx context.Context, seeds int, radius float64, res *geodesic.Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "geodesic march failed",
			"seeds", seeds,
			"radius", radius,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "geodesic march completed",
		"seeds", seeds,
		"radius", radius,
		"reached", res.Stats.Reached,
		"stop", res.Stop.String(),
		"clamps", res.Stats.Clamps,
		"fallbacks", res.Stats.Fallbacks,
	)
}

// LogExport logs a field export.
func (l *Logger) LogExport(ctx context.Context, values int, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "field export failed",
			"values", values,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "field exported",
			"values", values,
			"bytes", bytes,
		)
	}
}
