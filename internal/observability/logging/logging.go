package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON structured logger as the process default and
// returns it. Service identity is attached to every record.
func Setup(level slog.Level, serviceName, version string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler).With(
		slog.String("service", serviceName),
		slog.String("version", version),
	)
	slog.SetDefault(logger)
	return logger
}
