package logging

import (
	"log/slog"
	"os"
)

// Setup installs the process-wide slog logger: JSON records to stdout.
// Once the database is connected, main swaps in a MultiHandler that also
// feeds ERROR+ records to the moderation log sink (see PGHandler).
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
