package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the stdout JSON logger as the process default. Called
// before config loads so startup failures are already structured.
func Setup() {
	slog.SetDefault(slog.New(StdoutHandler()))
}

// StdoutHandler returns a JSON handler writing to stdout at the level
// named by LOG_LEVEL (debug, info, warn, error; default info).
func StdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
