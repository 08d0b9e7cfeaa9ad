package notify

import (
	"context"
	"log/slog"
	"os/exec"
)

// Desktop surfaces messages through the session's notification daemon.
// Falls back to the log when notify-send is not installed, so hotkey
// failures are never lost entirely.
type Desktop struct {
	logger *slog.Logger
}

func NewDesktop(logger *slog.Logger) *Desktop {
	return &Desktop{logger: logger}
}

func (d *Desktop) Notify(ctx context.Context, message string) error {
	if _, err := exec.LookPath("notify-send"); err == nil {
		cmd := exec.CommandContext(ctx, "notify-send", "--app-name=Soundboard", "Soundboard", message)
		if err := cmd.Run(); err == nil {
			return nil
		}
		d.logger.Warn("notify-send failed, falling back to log")
	}

	d.logger.Info("notification", "message", message)
	return nil
}
