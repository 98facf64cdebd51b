package custompaint

import (
	"log/slog"

	"github.com/gogpu/custompaint/internal/logger"
)

// SetLogger configures the logger for custompaint and all its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: skipped batches, ignored instructions, render errors
//   - [slog.LevelInfo]: surface acquisition, view lifecycle
//   - [slog.LevelWarn]: drawable decode failures, undeliverable replies
//
// Example:
//
//	custompaint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logger.Get()
}
