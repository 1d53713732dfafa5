package logger

import (
	"io"
	"log"
	"log/slog"
	"movieapi/proj/internal/lib/logger/handlers/slogpretty"
	"strings"
)

func SetupLogger(debug bool, out io.Writer) *slog.Logger {
	var handler slog.Handler
	if debug {
		handler = slogpretty.NewPrettyHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.New(handler)
}

type writer struct {
	log *slog.Logger
}

func (w writer) Write(p []byte) (n int, err error) {
	w.log.Warn(strings.TrimSpace(string(p)))
	return len(p), nil
}

// LogAdapter exposes slog as a *log.Logger for APIs such as http.Server.ErrorLog.
func LogAdapter(logger *slog.Logger) *log.Logger {
	return log.New(writer{logger}, "", 0)
}
