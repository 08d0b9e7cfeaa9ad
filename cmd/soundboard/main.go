package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"soundboard/config"
	"soundboard/internal/application"
	"soundboard/internal/infra/audio"
	"soundboard/internal/infra/control"
	"soundboard/internal/infra/hotkeys"
	"soundboard/internal/infra/notify"
	"soundboard/internal/infra/pulse"
	"soundboard/internal/infra/settings"
	"soundboard/internal/infra/watch"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	sink := pulse.NewSink(cfg.Sink.Name, logger)
	if !cfg.Sink.External {
		if err := sink.Ensure(ctx); err != nil {
			logger.Warn("provisioning sink", "error", err)
		}
		defer sink.Unload()
	}

	engine := audio.NewEngine(audio.NewDecoder(), audio.NewResolver(cfg.Sink.Match), logger)
	if err := engine.Start(); err != nil {
		logger.Warn("audio output unavailable, playback will fail", "error", err)
	}
	defer engine.Close()

	binder := selectBinder(logger)
	defer binder.Close()

	board := application.NewSoundboard(
		application.NewSoundStore(),
		settings.NewStore(cfg.Settings.Path, logger),
		engine,
		binder,
		notify.NewDesktop(logger),
		logger,
	)
	if err := board.Restore(); err != nil {
		logger.Error("restoring sounds", "error", err)
		os.Exit(1)
	}
	defer board.Close()

	if cfg.Watch.Dir != "" {
		go watch.NewWatcher(cfg.Watch.Dir, board, logger).Run(ctx)
	}

	server := control.NewServer(cfg.Control.Addr, cfg.Control.AuthToken, board, logger)
	if err := server.Start(ctx); err != nil {
		logger.Error("starting control server", "error", err)
		os.Exit(1)
	}

	logger.Info("soundboard ready",
		"sink", cfg.Sink.Name,
		"control_addr", cfg.Control.Addr,
		"hotkeys", binder.Available(),
	)

	<-ctx.Done()
}

// selectBinder picks the hotkey provider once at startup: the OS-hook
// registry when the session supports it, the no-op binder otherwise.
func selectBinder(logger *slog.Logger) application.HotkeyBinder {
	registry := hotkeys.NewRegistry(logger)
	if registry.Available() {
		return registry
	}
	logger.Warn("global hotkeys unavailable in this session, assignments disabled")
	return application.NoopBinder{}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
