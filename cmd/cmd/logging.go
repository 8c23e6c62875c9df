package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func parseLevel(level string) slog.Level {
	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// loggerFromFlags builds the logger handed to the library from the
// persistent --log-level flag.
func loggerFromFlags(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler)
}
