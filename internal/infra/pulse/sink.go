package pulse

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"soundboard/internal/infra"
)

// Sink provisions the reserved null-sink the board routes playback to.
// The sink feeds a monitor source that voice-chat apps can use as their
// input. When pactl is missing the sink is assumed to be provisioned
// externally and everything proceeds.
type Sink struct {
	name     string
	logger   *slog.Logger
	moduleID string
}

func NewSink(name string, logger *slog.Logger) *Sink {
	return &Sink{name: name, logger: logger}
}

// Ensure loads the null-sink module if the sink is not already present,
// then waits for it to show up in the sink list. Newly loaded modules
// can take a moment to appear to device enumeration.
func (s *Sink) Ensure(ctx context.Context) error {
	if _, err := exec.LookPath("pactl"); err != nil {
		s.logger.Warn("pactl not found, expecting sink to exist already", "sink", s.name)
		return nil
	}

	if s.exists(ctx) {
		s.logger.Info("sink already present", "sink", s.name)
		return nil
	}

	out, err := exec.CommandContext(ctx, "pactl",
		"load-module", "module-null-sink",
		"sink_name="+s.name,
		"sink_properties=device.description="+s.name,
	).Output()
	if err != nil {
		return fmt.Errorf("loading null sink module: %w", err)
	}
	s.moduleID = strings.TrimSpace(string(out))
	s.logger.Info("null sink loaded", "sink", s.name, "module", s.moduleID)

	return infra.WithRetry(ctx, infra.DefaultRetryConfig(), func() error {
		if s.exists(ctx) {
			return nil
		}
		return fmt.Errorf("sink %q not yet listed", s.name)
	})
}

// Unload removes the module this process loaded. A sink that existed
// before startup is left alone.
func (s *Sink) Unload() {
	if s.moduleID == "" {
		return
	}
	if err := exec.Command("pactl", "unload-module", s.moduleID).Run(); err != nil {
		s.logger.Warn("unloading sink module", "module", s.moduleID, "error", err)
	}
	s.moduleID = ""
}

func (s *Sink) exists(ctx context.Context) bool {
	out, err := exec.CommandContext(ctx, "pactl", "list", "short", "sinks").Output()
	if err != nil {
		return false
	}
	return strings.Contains(string(out), s.name)
}
